package triplet

import (
	"strings"

	"github.com/FocuswithJustin/configsub/core/glob"
)

// osSpec is the kernel, OS and object format resolved from a basic OS.
type osSpec struct {
	kernel string
	os     string
	obj    string
}

// kernelShorthand names a bare kernel whose default OS is derived by
// replacing the kernel prefix.
type kernelShorthand struct {
	when   glob.Set
	kernel string
	prefix string
	os     string
}

// leadingKernels are checked before the generic KERNEL-OS split.
var leadingKernels = []kernelShorthand{
	{glob.NewSet("gnu/linux*"), "linux", "gnu/linux", "gnu"},
	{glob.NewSet("os2-emx"), "os2", "os2-emx", "emx"},
	{glob.NewSet("nto-qnx*"), "nto", "nto-qnx", "qnx"},
}

// bareKernels apply only to a basic OS without a delimiter.
var bareKernels = []kernelShorthand{
	{glob.NewSet("nto*"), "nto", "nto", "qnx"},
	{glob.NewSet("ironclad*"), "ironclad", "ironclad", "mlibc"},
	{glob.NewSet("linux*"), "linux", "linux", "gnu"},
	{glob.NewSet("managarm*"), "managarm", "managarm", "mlibc"},
}

func (k kernelShorthand) apply(basicOS string) osSpec {
	return osSpec{kernel: k.kernel, os: strings.Replace(basicOS, k.prefix, k.os, 1)}
}

// splitKernel performs the first pass: separating an optional kernel from
// the OS.
func splitKernel(basicOS string) osSpec {
	for _, k := range leadingKernels {
		if k.when.Match(basicOS) {
			return k.apply(basicOS)
		}
	}
	if kernel, os, ok := strings.Cut(basicOS, Delimiter); ok {
		return osSpec{kernel: kernel, os: os}
	}
	for _, k := range bareKernels {
		if k.when.Match(basicOS) {
			return k.apply(basicOS)
		}
	}
	return osSpec{os: basicOS}
}

// osAlias rewrites the OS part. When rewrite is nil the OS becomes result;
// otherwise result only describes the rewrite.
type osAlias struct {
	when    glob.Set
	result  string
	rewrite func(o *osSpec, cpu string)
}

func replaceOSPrefix(old, new string) func(*osSpec, string) {
	return func(o *osSpec, _ string) {
		o.os = strings.Replace(o.os, old, new, 1)
	}
}

func keepOS(*osSpec, string) {}

var osAliases = []osAlias{
	{glob.NewSet("auroraux"), "auroraux", nil},
	{glob.NewSet("bluegene*"), "cnk", nil},
	{glob.NewSet("solaris1", "solaris1.*"), "sunos4*", replaceOSPrefix("solaris1", "sunos4")},
	{glob.NewSet("solaris"), "solaris2", nil},
	{glob.NewSet("unixware*"), "sysv4.2uw", nil},
	{glob.NewSet("ns", "ns1", "nextstep", "nextstep1", "openstep1"), "nextstep", nil},
	{glob.NewSet("ns2", "nextstep2", "openstep2"), "nextstep2", nil},
	{glob.NewSet("ns3", "nextstep3", "openstep", "openstep3"), "openstep3", nil},
	{glob.NewSet("ns4", "nextstep4", "openstep4"), "openstep4", nil},
	{glob.NewSet("es1800*"), "ose", nil},
	{glob.NewSet("chorusos*"), "chorusos", nil},
	{glob.NewSet("isc"), "isc2.2", nil},
	{glob.NewSet("sco6"), "sco5v6", nil},
	{glob.NewSet("sco5"), "sco3.2v5", nil},
	{glob.NewSet("sco4"), "sco3.2v4", nil},
	{glob.NewSet("sco3.2.[4-9]*"), "sco3.2v*", replaceOSPrefix("sco3.2.", "sco3.2v")},
	{glob.NewSet("sco*v*", "scout"), "(unchanged)", keepOS},
	{glob.NewSet("sco*"), "sco3.2v2", nil},
	{glob.NewSet("psos*"), "psos", nil},
	{glob.NewSet("sinix5.*"), "sysv5.*", replaceOSPrefix("sinix", "sysv")},
	{glob.NewSet("sinix*"), "sysv4", nil},
	{glob.NewSet("tpf*"), "tpf", nil},
	{glob.NewSet("triton*"), "sysv3", nil},
	{glob.NewSet("svr4*"), "sysv4", nil},
	{glob.NewSet("svr3"), "sysv3", nil},
	{glob.NewSet("sysvr4"), "sysv4", nil},
	{glob.NewSet("ose*"), "ose", nil},
	{glob.NewSet("dicos*"), "dicos", nil},
	{glob.NewSet("dynix*"), "bsd", nil},
	{glob.NewSet("acis*"), "aos", nil},
	{glob.NewSet("386bsd"), "bsd", nil},
	{glob.NewSet("ctix*", "uts*"), "sysv", nil},
	{glob.NewSet("nova*"), "rtmk-nova", func(o *osSpec, _ string) {
		o.kernel, o.os = "rtmk", "nova"
	}},
	{glob.NewSet("mac[0-9]*"), "macos*", replaceOSPrefix("mac", "macos")},
	{glob.NewSet("pikeos*"), "eabi on arm*, else bare elf", func(o *osSpec, cpu string) {
		if strings.HasPrefix(cpu, "arm") {
			o.os = "eabi"
			return
		}
		o.os, o.obj = "", "elf"
	}},
	{glob.NewSet("aout*", "coff*", "elf*", "pe*"), "(object format)", func(o *osSpec, _ string) {
		o.os, o.obj = "", o.os
	}},
}

// normalizeOS resolves a basic OS into kernel, OS and object format.
func normalizeOS(basicOS, cpu string) (kernel, os, obj string) {
	o := splitKernel(basicOS)
	for _, a := range osAliases {
		if !a.when.Match(o.os) {
			continue
		}
		if a.rewrite == nil {
			o.os = a.result
		} else {
			a.rewrite(&o, cpu)
		}
		break
	}
	return o.kernel, o.os, o.obj
}
