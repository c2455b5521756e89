package triplet

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// four fields pass straight through
		{"x86_64-unknown-linux-gnu", "x86_64-unknown-linux-gnu"},
		{"x86_64-pc-windows-msvc", "x86_64-pc-windows-msvc"},
		{"x86_64-pc-nto-qnx7.0", "x86_64-pc-nto-qnx7.0"},

		// vendor omitted
		{"amd64-linux", "x86_64-pc-linux-gnu"},
		{"i686-linux", "i686-pc-linux-gnu"},
		{"x86_64-linux-musl", "x86_64-pc-linux-musl"},
		{"aarch64-linux-android", "aarch64-unknown-linux-android"},
		{"arm-android-linux", "arm-unknown-linux-android"},
		{"x86_64-nto-qnx7.0", "x86_64-pc-nto-qnx7.0"},
		{"s390x-linux-gnu", "s390x-ibm-linux-gnu"},
		{"sparc-solaris", "sparc-sun-solaris2"},
		{"i386-solaris1.1", "i386-pc-sunos4.1"},
		{"mips-elf", "mips-unknown-elf"},
		{"javascript-ghcjs", "javascript-unknown-ghcjs"},
		{"x86_64-zephyr", "x86_64-unknown-zephyr"},

		// board names and vendor aliases
		{"w89k-unknown", "hppa1.1-winbond-proelf"},
		{"w89k-unknown-linux-gnu", "hppa1.1-winbond-linux-gnu"},
		{"amd64-unknown-linux-gnu", "x86_64-unknown-linux-gnu"},
		{"i586-digital-linux", "i586-dec-linux-gnu"},

		// OS picked from the machine
		{"m68k-hp", "m68k-hp-hpux"},
		{"c1-convex-none", "c1-convex-none"},
		{"convex-c1", "c1-convex-none"},
		{"decstation-3100", "mips-dec-ultrix4.2"},

		// OS aliases
		{"i386-pc-sco5", "i386-pc-sco3.2v5"},
		{"m68k-unknown-sco3.2.4", "m68k-unknown-sco3.2v4"},
		{"x86_64-unknown-mac10", "x86_64-apple-macos10"},
		{"x86_64-unknown-nova", "x86_64-unknown-rtmk-nova"},
		{"arm-unknown-pikeos", "arm-unknown-eabi"},
		{"x86_64-unknown-pikeos", "x86_64-unknown-elf"},
		{"sparc-sun-solaris2.8", "sparc-sun-solaris2.8"},
		{"powerpc-ibm-aix7.2", "powerpc-ibm-aix7.2"},

		// already canonical three-field forms
		{"arm-none-eabi", "arm-none-eabi"},
		{"x86_64-w64-mingw32", "x86_64-w64-mingw32"},
		{"x86_64-unknown-none", "x86_64-unknown-none"},

		// single-field aliases
		{"sun4", "sparc-sun-sunos4.1.1"},
		{"386bsd", "i386-pc-bsd"},
		{"mingw32", "i686-pc-mingw32"},
		{"decstation", "mips-dec-ultrix4.2"},

		// local identifiers are untouched
		{"i386-pc-local", "i386-pc-local"},
		{"local", "local"},
		{"a-b-c-d-e-local", "a-b-c-d-e-local"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"a-b-c-d-e", ErrTooManyComponents},
		{"x86_64-pc-linux-gnu-elf", ErrTooManyComponents},
		{"foo", ErrUnknownAlias},
		{"", ErrUnknownAlias},
		{"-linux", ErrMachineNotRecognized},
		{"x86_64-pc-linux-", ErrBlankOSRequiresObjectFormat},
		{"x86_64-pc-linux-foo", ErrOSNotRecognized},
		{"x86_64-pc-gnu/linux-x", ErrOSNotRecognized},
		{"i386-pc-sco3.2v3", ErrOSNotRecognized},
		{"javascript-none", ErrCPUIncompatibleWithOS},
		{"x86_64-ghcjs", ErrCPUIncompatibleWithOS},
		{"x86_64-unknown-musl", ErrLibcNeedsExplicitKernel},
		{"x86_64-unknown-kernel", ErrOSNeedsExplicitKernel},
		{"x86_64-pc-linux-kernel", ErrKernelDoesNotSupportOS},
		{"x86_64-pc-msvc", ErrOSNeedsWindows},
		{"x86_64-pc-foo-gnu", ErrKernelNotKnownToWorkWithOS},
		{"x86_64-pc-linux-gnu-x", ErrTooManyComponents},
		{"x86_64-pc-linux-elf", ErrKernelNotKnownToWorkWithOS},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err == nil {
				t.Fatalf("Canonicalize(%q) = %q, want error %v", tt.input, got, tt.kind)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("Canonicalize(%q) error = %v, want kind %v", tt.input, err, tt.kind)
			}
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if terr.Input != tt.input {
				t.Errorf("Input = %q, want %q", terr.Input, tt.input)
			}
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		"amd64-linux", "w89k-unknown", "sun4", "386bsd", "mips-elf",
		"x86_64-nto-qnx7.0", "sparc-solaris", "s390x-linux-gnu",
		"x86_64-unknown-mac10", "x86_64-unknown-nova", "convex-c1",
		"decstation", "arm-android-linux", "x86_64-unknown-pikeos",
		"i386-pc-sco5", "m68k-hp", "javascript-ghcjs", "riscv32-tock",
		"amiga", "djgpp", "vms", "tpf", "xbox", "cray",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once, err := Canonicalize(in)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", in, err)
			}
			twice, err := Canonicalize(once)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", once, err)
			}
			if once != twice {
				t.Errorf("not idempotent: %q -> %q -> %q", in, once, twice)
			}
		})
	}
}

func TestCanonicalizeRejectsKernelLikeVendor(t *testing.T) {
	tests := []struct {
		input  string
		kernel string
		os     string
	}{
		{"arm-netbsd-pikeos", "netbsd", "eabi"},
		{"x86_64-linux--uefi", "linux", "uefi"},
		{"x86_64-nto--qnx", "nto", "qnx"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if !errors.Is(err, ErrKernelNotKnownToWorkWithOS) {
				t.Fatalf("Canonicalize(%q) = %q, %v; want ErrKernelNotKnownToWorkWithOS", tt.input, got, err)
			}
			var terr *Error
			errors.As(err, &terr)
			if terr.Kernel != tt.kernel || terr.OS != tt.os {
				t.Errorf("kernel/os = %q/%q, want %q/%q", terr.Kernel, terr.OS, tt.kernel, tt.os)
			}
		})
	}

	// Other vendors keep the pikeos rewrite.
	if got, err := Canonicalize("arm-sysgo-pikeos"); err != nil || got != "arm-sysgo-eabi" {
		t.Errorf("Canonicalize(arm-sysgo-pikeos) = %q, %v", got, err)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("x86_64-unknown-pikeos")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := Triplet{CPU: "x86_64", Vendor: "unknown", ObjectFormat: "elf"}
	if got != want {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
	if got.IsLocal() {
		t.Error("IsLocal() = true for a resolved triplet")
	}

	got, err = Parse("x86_64-pc-linux-gnu")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if got.Kernel != "linux" || got.OS != "gnu" {
		t.Errorf("Parse() kernel/os = %q/%q, want linux/gnu", got.Kernel, got.OS)
	}

	local, err := Parse("i386-pc-local")
	if err != nil {
		t.Fatalf("Parse(local) error: %v", err)
	}
	if !local.IsLocal() || local.String() != "i386-pc-local" {
		t.Errorf("Parse(local) = %+v", local)
	}
}

func TestTripletString(t *testing.T) {
	tests := []struct {
		name string
		t    Triplet
		want string
	}{
		{"cpu and vendor only", Triplet{CPU: "arm", Vendor: "none"}, "arm-none"},
		{"os", Triplet{CPU: "arm", Vendor: "none", OS: "eabi"}, "arm-none-eabi"},
		{"kernel and os", Triplet{CPU: "x86_64", Vendor: "pc", Kernel: "linux", OS: "gnu"}, "x86_64-pc-linux-gnu"},
		{"object format", Triplet{CPU: "mips", Vendor: "unknown", ObjectFormat: "elf"}, "mips-unknown-elf"},
		{"kernel and object format", Triplet{CPU: "arm", Vendor: "unknown", Kernel: "none", ObjectFormat: "elf"}, "arm-unknown-none-elf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"x86_64", 1, false},
		{"amd64-linux", 2, false},
		{"arm-none-eabi", 3, false},
		{"x86_64-pc-linux-gnu", 4, false},
		{"a-b-c-d-e", 0, true},
		{"", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fields, err := split(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("split(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && len(fields) != tt.want {
				t.Errorf("split(%q) = %d fields, want %d", tt.input, len(fields), tt.want)
			}
		})
	}
}
