package triplet

import (
	"strings"

	"github.com/FocuswithJustin/configsub/core/glob"
)

// compoundOSShapes are the second-and-third field shapes of a 3-field
// identifier that name a KERNEL-OS pair, meaning the vendor was left out.
var compoundOSShapes = glob.NewSet(
	"cloudabi*-eabi*",
	"kfreebsd*-gnu*",
	"knetbsd*-gnu*",
	"kopensolaris*-gnu*",
	"ironclad-*",
	"linux-*",
	"managarm-*",
	"netbsd*-eabi*",
	"netbsd*-gnu*",
	"nto-qnx*",
	"os2-emx*",
	"rtmk-nova*",
	"storm-chaos*",
	"uclinux-gnu*",
	"uclinux-uclibc*",
	"windows-*",
)

// pairAlias rewrites a whole 2-field identifier.
type pairAlias struct {
	when    glob.Set
	machine string // "%1" is replaced by the second field
}

// twoFieldShorthands are short-hands that happen to contain one delimiter.
var twoFieldShorthands = []pairAlias{
	{glob.NewSet("convex-c[12]", "convex-c3[248]"), "%1-convex"},
	{glob.NewSet("decstation-3100"), "mips-dec"},
}

// sunOSShape keeps SunOS names from being read as the "sun" manufacturer.
var sunOSShape = glob.NewSet("sun*os*")

// manufacturers are second fields that name a vendor rather than an OS.
// "unknown" and "pc" are the placeholder vendors that canonical output
// itself uses.
var manufacturers = glob.NewSet(
	"3100*", "32*", "3300*", "3600*", "7300*",
	"acorn", "altos*", "apollo", "apple", "atari", "att*", "axis",
	"be", "bull", "cbm", "ccur", "cisco", "commodore", "convergent*",
	"convex*", "cray", "crds", "dec*", "delta*", "dg", "digital",
	"dolphin", "encore*", "gould", "harris", "highlevel", "hitachi*",
	"hp", "ibm*", "intergraph", "isi*", "knuth", "masscomp",
	"microblaze*", "mips*", "motorola*", "ncr*", "news", "next", "ns",
	"oki", "omron*", "pc533*", "rebel", "rom68k", "rombug", "semi",
	"sequent*", "sgi*", "siemens", "sim", "sni", "sony*", "stratus",
	"sun", "sun[234]*", "tektronix", "tti*", "ultra", "unicom*", "wec",
	"winbond", "wrs",
	"unknown", "pc",
)

// embeddedOSFamilies are RTOS names that follow the CPU directly.
var embeddedOSFamilies = glob.NewSet("tock*", "zephyr*")

// singleAlias expands a 1-field legacy short-hand.
type singleAlias struct {
	when    glob.Set
	machine string
	os      string
}

// singleFieldAliases are the only 1-field identifiers accepted.
var singleFieldAliases = []singleAlias{
	{glob.NewSet("386bsd"), "i386-pc", "bsd"},
	{glob.NewSet("a29khif"), "a29k-amd", "udi"},
	{glob.NewSet("adobe68k"), "m68010-adobe", "scout"},
	{glob.NewSet("alliant"), "fx80-alliant", ""},
	{glob.NewSet("altos", "altos3068"), "m68k-altos", ""},
	{glob.NewSet("am29k"), "a29k-none", "bsd"},
	{glob.NewSet("amdahl"), "580-amdahl", "sysv"},
	{glob.NewSet("amiga"), "m68k-unknown", ""},
	{glob.NewSet("amigaos", "amigados"), "m68k-unknown", "amigaos"},
	{glob.NewSet("amigaunix", "amix"), "m68k-unknown", "sysv4"},
	{glob.NewSet("apollo68"), "m68k-apollo", "sysv"},
	{glob.NewSet("apollo68bsd"), "m68k-apollo", "bsd"},
	{glob.NewSet("aros"), "i386-pc", "aros"},
	{glob.NewSet("aux"), "m68k-apple", "aux"},
	{glob.NewSet("balance"), "ns32k-sequent", "dynix"},
	{glob.NewSet("blackfin"), "bfin-unknown", "linux"},
	{glob.NewSet("cegcc"), "arm-unknown", "cegcc"},
	{glob.NewSet("cray"), "j90-cray", "unicos"},
	{glob.NewSet("crds", "unos"), "m68k-crds", ""},
	{glob.NewSet("da30"), "m68k-da30", ""},
	{glob.NewSet("decstation", "pmax", "pmin", "dec3100", "decstatn"), "mips-dec", ""},
	{glob.NewSet("delta88"), "m88k-motorola", "sysv3"},
	{glob.NewSet("dicos"), "i686-pc", "dicos"},
	{glob.NewSet("djgpp"), "i586-pc", "msdosdjgpp"},
	{glob.NewSet("ebmon29k"), "a29k-amd", "ebmon"},
	{glob.NewSet("es1800", "OSE68k", "ose68k", "ose", "OSE"), "m68k-ericsson", "ose"},
	{glob.NewSet("gmicro"), "tron-gmicro", "sysv"},
	{glob.NewSet("go32"), "i386-pc", "go32"},
	{glob.NewSet("h8300hms"), "h8300-hitachi", "hms"},
	{glob.NewSet("h8300xray"), "h8300-hitachi", "xray"},
	{glob.NewSet("h8500hms"), "h8500-hitachi", "hms"},
	{glob.NewSet("harris"), "m88k-harris", "sysv3"},
	{glob.NewSet("hp300", "hp300hpux"), "m68k-hp", "hpux"},
	{glob.NewSet("hp300bsd"), "m68k-hp", "bsd"},
	{glob.NewSet("hppaosf"), "hppa1.1-hp", "osf"},
	{glob.NewSet("hppro"), "hppa1.1-hp", "proelf"},
	{glob.NewSet("i386mach"), "i386-mach", "mach"},
	{glob.NewSet("isi68", "isi"), "m68k-isi", "sysv"},
	{glob.NewSet("m68knommu"), "m68k-unknown", "linux"},
	{glob.NewSet("magnum", "m3230"), "mips-mips", "sysv"},
	{glob.NewSet("merlin"), "ns32k-utek", "sysv"},
	{glob.NewSet("mingw64"), "x86_64-pc", "mingw64"},
	{glob.NewSet("mingw32"), "i686-pc", "mingw32"},
	{glob.NewSet("mingw32ce"), "arm-unknown", "mingw32ce"},
	{glob.NewSet("monitor"), "m68k-rom68k", "coff"},
	{glob.NewSet("morphos"), "powerpc-unknown", "morphos"},
	{glob.NewSet("moxiebox"), "moxie-unknown", "moxiebox"},
	{glob.NewSet("msdos"), "i386-pc", "msdos"},
	{glob.NewSet("msys"), "i686-pc", "msys"},
	{glob.NewSet("mvs"), "i370-ibm", "mvs"},
	{glob.NewSet("nacl"), "le32-unknown", "nacl"},
	{glob.NewSet("ncr3000"), "i486-ncr", "sysv4"},
	{glob.NewSet("netbsd386"), "i386-pc", "netbsd"},
	{glob.NewSet("netwinder"), "armv4l-rebel", "linux"},
	{glob.NewSet("news", "news700", "news800", "news900"), "m68k-sony", "newsos"},
	{glob.NewSet("news1000"), "m68030-sony", "newsos"},
	{glob.NewSet("necv70"), "v70-nec", "sysv"},
	{glob.NewSet("nh3000"), "m68k-harris", "cxux"},
	{glob.NewSet("nh[45]000"), "m88k-harris", "cxux"},
	{glob.NewSet("nindy960"), "i960-intel", "nindy"},
	{glob.NewSet("mon960"), "i960-intel", "mon960"},
	{glob.NewSet("nonstopux"), "mips-compaq", "nonstopux"},
	{glob.NewSet("os400"), "powerpc-ibm", "os400"},
	{glob.NewSet("OSE68000", "ose68000"), "m68000-ericsson", "ose"},
	{glob.NewSet("os68k"), "m68k-none", "os68k"},
	{glob.NewSet("paragon"), "i860-intel", "osf"},
	{glob.NewSet("parisc"), "hppa-unknown", "linux"},
	{glob.NewSet("psp"), "mipsallegrexel-sony", "psp"},
	{glob.NewSet("pw32"), "i586-unknown", "pw32"},
	{glob.NewSet("rdos", "rdos64"), "x86_64-pc", "rdos"},
	{glob.NewSet("rdos32"), "i386-pc", "rdos"},
	{glob.NewSet("rom68k"), "m68k-rom68k", "coff"},
	{glob.NewSet("sa29200"), "a29k-amd", "udi"},
	{glob.NewSet("sei"), "mips-sei", "seiux"},
	{glob.NewSet("sequent"), "i386-sequent", ""},
	{glob.NewSet("sps7"), "m68k-bull", "sysv2"},
	{glob.NewSet("st2000"), "m68k-tandem", ""},
	{glob.NewSet("stratus"), "i860-stratus", "sysv4"},
	{glob.NewSet("sun2"), "m68000-sun", ""},
	{glob.NewSet("sun2os3"), "m68000-sun", "sunos3"},
	{glob.NewSet("sun2os4"), "m68000-sun", "sunos4"},
	{glob.NewSet("sun3"), "m68k-sun", ""},
	{glob.NewSet("sun3os3"), "m68k-sun", "sunos3"},
	{glob.NewSet("sun3os4"), "m68k-sun", "sunos4"},
	{glob.NewSet("sun4"), "sparc-sun", ""},
	{glob.NewSet("sun4os3"), "sparc-sun", "sunos3"},
	{glob.NewSet("sun4os4"), "sparc-sun", "sunos4"},
	{glob.NewSet("sun4sol2"), "sparc-sun", "solaris2"},
	{glob.NewSet("sun386", "sun386i", "roadrunner"), "i386-sun", ""},
	{glob.NewSet("sv1"), "sv1-cray", "unicos"},
	{glob.NewSet("symmetry"), "i386-sequent", "dynix"},
	{glob.NewSet("t3e"), "alphaev5-cray", "unicos"},
	{glob.NewSet("t90"), "t90-cray", "unicos"},
	{glob.NewSet("toad1"), "pdp10-xkl", "tops20"},
	{glob.NewSet("tpf"), "s390x-ibm", "tpf"},
	{glob.NewSet("udi29k"), "a29k-amd", "udi"},
	{glob.NewSet("ultra3"), "a29k-nyu", "sym1"},
	{glob.NewSet("v810", "necv810"), "v810-nec", "none"},
	{glob.NewSet("vaxv"), "vax-dec", "sysv"},
	{glob.NewSet("vms"), "vax-dec", "vms"},
	{glob.NewSet("vsta"), "i386-pc", "vsta"},
	{glob.NewSet("vxworks960"), "i960-wrs", "vxworks"},
	{glob.NewSet("vxworks68"), "m68k-wrs", "vxworks"},
	{glob.NewSet("vxworks29k"), "a29k-wrs", "vxworks"},
	{glob.NewSet("xbox"), "i686-pc", "mingw32"},
	{glob.NewSet("ymp"), "ymp-cray", "unicos"},
}

// resolve separates the fields into a basic machine and a basic OS.
func resolve(fields []string) (basicMachine, basicOS string, err *Error) {
	switch len(fields) {
	case 4:
		return joinFields(fields[0], fields[1]), joinFields(fields[2], fields[3]), nil
	case 3:
		machine, os := resolveThree(fields[0], fields[1], fields[2])
		return machine, os, nil
	case 2:
		machine, os := resolveTwo(fields[0], fields[1])
		return machine, os, nil
	case 1:
		return resolveOne(fields[0])
	}
	return "", "", &Error{Kind: ErrTooManyComponents}
}

// resolveThree decides whether the middle field is a vendor or the kernel
// half of a KERNEL-OS pair.
func resolveThree(f0, f1, f2 string) (string, string) {
	maybeOS := joinFields(f1, f2)
	switch {
	case compoundOSShapes.Match(maybeOS):
		return f0, maybeOS
	case f1 == "android" && f2 == "linux":
		return joinFields(f0, unknownVendor), "linux-android"
	}
	return joinFields(f0, f1), f2
}

// resolveTwo decides whether the second field is a vendor or an OS.
func resolveTwo(f0, f1 string) (string, string) {
	whole := joinFields(f0, f1)
	for _, a := range twoFieldShorthands {
		if a.when.Match(whole) {
			return strings.ReplaceAll(a.machine, "%1", f1), ""
		}
	}

	switch {
	case sunOSShape.Match(f1):
		return f0, f1
	case manufacturers.Match(f1):
		return whole, ""
	case embeddedOSFamilies.Match(f1):
		return joinFields(f0, unknownVendor), f1
	}
	return f0, f1
}

// resolveOne expands a legacy 1-field short-hand.
func resolveOne(f0 string) (string, string, *Error) {
	for _, a := range singleFieldAliases {
		if a.when.Match(f0) {
			return a.machine, a.os, nil
		}
	}
	return "", "", &Error{Kind: ErrUnknownAlias, Machine: f0}
}
