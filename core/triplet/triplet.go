package triplet

import (
	"strings"
)

const (
	// Delimiter separates the fields of an identifier.
	Delimiter = "-"

	// maxFields is the largest arity an identifier may have.
	maxFields = 4

	// localMarker tags locally-defined identifiers that bypass all rules.
	localMarker = "local"

	unknownVendor = "unknown"
)

// Triplet is a canonical target identifier.
type Triplet struct {
	CPU          string `json:"cpu"`
	Vendor       string `json:"vendor"`
	Kernel       string `json:"kernel,omitempty"`
	OS           string `json:"os,omitempty"`
	ObjectFormat string `json:"object_format,omitempty"`

	// local holds the raw identifier of a locally-defined target.
	local string
}

// Canonicalize returns the canonical form of identifier.
//
// Identifiers containing "local" are returned unchanged without any checks.
// Any other input either yields a canonical string or an *Error.
func Canonicalize(identifier string) (string, error) {
	t, err := Parse(identifier)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// Parse runs the full canonicalization pipeline and returns the resolved
// components.
func Parse(identifier string) (Triplet, error) {
	if IsLocal(identifier) {
		return Triplet{local: identifier}, nil
	}

	t, err := parse(identifier)
	if err != nil {
		err.Input = identifier
		return Triplet{}, err
	}
	return t, nil
}

func parse(identifier string) (Triplet, *Error) {
	fields, err := split(identifier)
	if err != nil {
		return Triplet{}, err
	}

	basicMachine, basicOS, err := resolve(fields)
	if err != nil {
		return Triplet{}, err
	}

	var t Triplet
	t.CPU, t.Vendor = normalizeMachine(basicMachine)
	if t.CPU == "" {
		return Triplet{}, &Error{Kind: ErrMachineNotRecognized, Machine: basicMachine}
	}

	if basicOS == "" {
		basicOS = defaultOS(t.CPU, t.Vendor)
	}
	t.Kernel, t.OS, t.ObjectFormat = normalizeOS(basicOS, t.CPU)

	if err := validate(t); err != nil {
		return Triplet{}, err
	}

	t.Vendor = refineVendor(t.CPU, t.Vendor, t.OS)
	if err := checkReread(t); err != nil {
		return Triplet{}, err
	}
	return t, nil
}

// checkReread rejects a kernel-less triplet whose printed form would read
// its vendor back as a kernel, so that canonical output stays a fixed point.
// x86_64-linux--uefi, for example, would print as x86_64-linux-uefi.
func checkReread(t Triplet) *Error {
	if t.Kernel != "" || (t.OS != "" && t.ObjectFormat != "") {
		return nil
	}
	tail := t.OS + t.ObjectFormat
	if tail == "" {
		return nil
	}
	if machine, _ := resolveThree(t.CPU, t.Vendor, tail); machine == joinFields(t.CPU, t.Vendor) {
		return nil
	}
	err := newError(ErrKernelNotKnownToWorkWithOS, t)
	err.Kernel, err.OS = t.Vendor, tail
	return err
}

// IsLocal reports whether identifier is a locally-defined target that is
// passed through unchanged.
func IsLocal(identifier string) bool {
	return strings.Contains(identifier, localMarker)
}

// split breaks identifier into its 1 to 4 fields.
func split(identifier string) ([]string, *Error) {
	fields := strings.Split(identifier, Delimiter)
	if len(fields) > maxFields {
		return nil, &Error{Kind: ErrTooManyComponents}
	}
	return fields, nil
}

// IsLocal reports whether t is a passed-through local identifier.
func (t Triplet) IsLocal() bool {
	return t.local != ""
}

// String formats t as cpu-vendor[-kernel][-os][-objformat].
func (t Triplet) String() string {
	if t.local != "" {
		return t.local
	}

	var sb strings.Builder
	sb.WriteString(t.CPU)
	sb.WriteString(Delimiter)
	sb.WriteString(t.Vendor)
	for _, part := range []string{t.Kernel, t.OS, t.ObjectFormat} {
		if part != "" {
			sb.WriteString(Delimiter)
			sb.WriteString(part)
		}
	}
	return sb.String()
}

// joinFields joins non-positional parts with the delimiter, used to build
// the subjects that the rule tables match against.
func joinFields(parts ...string) string {
	return strings.Join(parts, Delimiter)
}
