package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// contract shape checks
	CtrInfo                       Code = 1000
	CtrInvalidFirstParameter      Code = 1001
	CtrUnsupportedParameterType   Code = 1002
	CtrMissingParameterIdentifier Code = 1003
	CtrUnsupportedReturnType      Code = 1004
	CtrDuplicateExport            Code = 1005
	CtrUnknownDirective           Code = 1006
	CtrDirectivePlacement         Code = 1007
	CtrUnresolvedContract         Code = 1008
	CtrEmptyContractImpl          Code = 1009

	// Go front-end
	SynInfo       Code = 2000
	SynParseError Code = 2001

	IOInfo          Code = 4000
	IOLoadFileError Code = 4001

	ProjInfo            Code = 5000
	ProjPackageMismatch Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                   "Unknown error",
	CtrInfo:                       "Contract information",
	CtrInvalidFirstParameter:      "First parameter must be of type Env",
	CtrUnsupportedParameterType:   "Unsupported parameter type",
	CtrMissingParameterIdentifier: "Parameter has no usable name",
	CtrUnsupportedReturnType:      "Unsupported return type",
	CtrDuplicateExport:            "Duplicate contract export",
	CtrUnknownDirective:           "Unknown contract directive",
	CtrDirectivePlacement:         "Contract directive on unsupported declaration",
	CtrUnresolvedContract:         "Contract interface not found in package",
	CtrEmptyContractImpl:          "Contract implementation has no entry points",
	SynInfo:                       "Syntax information",
	SynParseError:                 "Go syntax error",
	IOInfo:                        "I/O information",
	IOLoadFileError:               "Failed to load file",
	ProjInfo:                      "Package information",
	ProjPackageMismatch:           "Files belong to different packages",
}

// ID returns the stable textual identifier, e.g. CTR1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CTR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
