package triplet

import (
	"errors"
	"fmt"

	coreerrors "github.com/FocuswithJustin/configsub/core/errors"
)

// Error kinds. Every error returned by Parse or Canonicalize is an *Error
// whose Kind is one of these sentinels, so callers can use errors.Is.
var (
	ErrTooManyComponents           = errors.New("more than four components")
	ErrUnknownAlias                = errors.New("unknown alias")
	ErrMachineNotRecognized        = errors.New("machine not recognized")
	ErrBlankOSRequiresObjectFormat = errors.New("blank OS requires explicit object format")
	ErrOSNotRecognized             = errors.New("OS not recognized")
	ErrObjectFormatNotRecognized   = errors.New("object format not recognized")
	ErrCPUIncompatibleWithOS       = errors.New("CPU incompatible with OS")
	ErrLibcNeedsExplicitKernel     = errors.New("libc needs explicit kernel")
	ErrOSNeedsExplicitKernel       = errors.New("OS needs explicit kernel")
	ErrKernelDoesNotSupportOS      = errors.New("kernel does not support OS")
	ErrOSNeedsWindows              = errors.New("OS needs windows")
	ErrKernelNotKnownToWorkWithOS  = errors.New("kernel not known to work with OS")
)

// kindNames gives every kind a stable name for persistence and logs.
var kindNames = []struct {
	kind error
	name string
}{
	{ErrTooManyComponents, "TooManyComponents"},
	{ErrUnknownAlias, "UnknownAlias"},
	{ErrMachineNotRecognized, "MachineNotRecognized"},
	{ErrBlankOSRequiresObjectFormat, "BlankOsRequiresExplicitObjectFormat"},
	{ErrOSNotRecognized, "OsNotRecognized"},
	{ErrObjectFormatNotRecognized, "ObjectFormatNotRecognized"},
	{ErrCPUIncompatibleWithOS, "CpuIncompatibleWithOs"},
	{ErrLibcNeedsExplicitKernel, "LibcNeedsExplicitKernel"},
	{ErrOSNeedsExplicitKernel, "OsNeedsExplicitKernel"},
	{ErrKernelDoesNotSupportOS, "KernelDoesNotSupportOs"},
	{ErrOSNeedsWindows, "OsNeedsWindows"},
	{ErrKernelNotKnownToWorkWithOS, "KernelNotKnownToWorkWithOs"},
}

// KindName returns the stable name of an error kind, or "" if kind is not
// one of the sentinels above.
func KindName(kind error) string {
	for _, k := range kindNames {
		if k.kind == kind {
			return k.name
		}
	}
	return ""
}

// KindByName is the inverse of KindName.
func KindByName(name string) (error, bool) {
	for _, k := range kindNames {
		if k.name == name {
			return k.kind, true
		}
	}
	return nil, false
}

// Error describes why an identifier could not be canonicalized.
//
// The component fields hold whatever the pipeline had resolved when the
// failure was detected; which of them are meaningful depends on Kind.
type Error struct {
	Kind         error
	Input        string
	Machine      string // unresolved machine or alias, for alias/machine errors
	CPU          string
	Kernel       string
	OS           string
	ObjectFormat string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration '%s': %s", e.Input, e.detail())
}

func (e *Error) detail() string {
	switch e.Kind {
	case ErrTooManyComponents:
		return "more than four components"
	case ErrUnknownAlias:
		return fmt.Sprintf("alias '%s' not recognized", e.Machine)
	case ErrMachineNotRecognized:
		return fmt.Sprintf("machine '%s' not recognized", e.Machine)
	case ErrBlankOSRequiresObjectFormat:
		return "blank OS only allowed with explicit machine code file format"
	case ErrOSNotRecognized:
		return fmt.Sprintf("system '%s' not recognized", e.OS)
	case ErrObjectFormatNotRecognized:
		return fmt.Sprintf("machine code format '%s' not recognized", e.ObjectFormat)
	case ErrCPUIncompatibleWithOS:
		return fmt.Sprintf("CPU '%s' is not valid with OS '%s%s'", e.CPU, e.OS, e.ObjectFormat)
	case ErrLibcNeedsExplicitKernel:
		return fmt.Sprintf("libc '%s' needs explicit kernel", e.OS)
	case ErrOSNeedsExplicitKernel:
		return fmt.Sprintf("'%s' needs explicit kernel", e.OS)
	case ErrKernelDoesNotSupportOS:
		return fmt.Sprintf("'%s' does not support '%s'", e.Kernel, e.OS)
	case ErrOSNeedsWindows:
		return fmt.Sprintf("'%s' needs 'windows'", e.OS)
	case ErrKernelNotKnownToWorkWithOS:
		return fmt.Sprintf("kernel '%s' not known to work with OS '%s'", e.Kernel, e.OS)
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the kind sentinel and its shared category.
func (e *Error) Unwrap() []error {
	category := coreerrors.ErrInvalidInput
	if e.Kind == ErrUnknownAlias {
		category = coreerrors.ErrUnsupported
	}
	if e.Kind == nil {
		return []error{category}
	}
	return []error{e.Kind, category}
}

// KindName returns the stable name of the error's kind.
func (e *Error) KindName() string {
	return KindName(e.Kind)
}

func newError(kind error, t Triplet) *Error {
	return &Error{
		Kind:         kind,
		CPU:          t.CPU,
		Kernel:       t.Kernel,
		OS:           t.OS,
		ObjectFormat: t.ObjectFormat,
	}
}
