package pipeline

import (
	"sync"
	"testing"
	"time"
)

func TestTimings(t *testing.T) {
	var tm Timings
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add(StageParse, time.Millisecond)
		}()
	}
	wg.Wait()
	tm.Add(StageEmit, 5*time.Millisecond)

	if got := tm.Duration(StageParse); got != 10*time.Millisecond {
		t.Errorf("parse = %v", got)
	}
	if got := tm.Sum(); got != 15*time.Millisecond {
		t.Errorf("sum = %v", got)
	}
	if got := tm.Sum(StageEmit); got != 5*time.Millisecond {
		t.Errorf("emit = %v", got)
	}

	var nilTimings *Timings
	nilTimings.Add(StageLoad, time.Second)
	if nilTimings.Duration(StageLoad) != 0 {
		t.Error("nil Timings should record nothing")
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 2)
	var got []Event
	sink := MultiSink{ChannelSink{Ch: ch}, FuncSink(func(e Event) { got = append(got, e) }), nil}

	sink.OnEvent(Event{Package: "a", Stage: StageLoad, Status: StatusWorking})
	close(ch)

	if len(got) != 1 || got[0].Package != "a" {
		t.Errorf("func sink got %+v", got)
	}
	if e := <-ch; e.Stage != StageLoad {
		t.Errorf("channel sink got %+v", e)
	}
	ChannelSink{}.OnEvent(Event{})
}
