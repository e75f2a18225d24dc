package selection

// V850FPU lists the V850E2 floating-point instructions handled by the
// hand-written disassembler.
var V850FPU = []string{
	"absf.d", "absf.s",
	"addf.d", "addf.s",
	"ceilf.dl", "ceilf.dul", "ceilf.duw", "ceilf.dw",
	"ceilf.sl", "ceilf.sul", "ceilf.suw", "ceilf.sw",
	"cmovf.d", "cmovf.s",
	"cmpf.d", "cmpf.s",
	"cvtf.dl", "cvtf.ds", "cvtf.dul", "cvtf.duw", "cvtf.dw",
	"cvtf.ld", "cvtf.ls",
	"cvtf.sd", "cvtf.sl", "cvtf.sul", "cvtf.suw", "cvtf.sw",
	"cvtf.uld", "cvtf.uls", "cvtf.uwd", "cvtf.uws",
	"cvtf.wd", "cvtf.ws",
	"divf.d", "divf.s",
	"floorf.dl", "floorf.dul", "floorf.duw", "floorf.dw",
	"floorf.sl", "floorf.sul", "floorf.suw", "floorf.sw",
	"maddf.s",
	"maxf.d", "maxf.s",
	"minf.d", "minf.s",
	"msubf.s",
	"mulf.d", "mulf.s",
	"negf.d", "negf.s",
	"nmaddf.s", "nmsubf.s",
	"recipf.d", "recipf.s",
	"rsqrtf.d", "rsqrtf.s",
	"sqrtf.d", "sqrtf.s",
	"subf.d", "subf.s",
	"trfsr",
	"trncf.dl", "trncf.dul", "trncf.duw", "trncf.dw",
	"trncf.sl", "trncf.sul", "trncf.suw", "trncf.sw",
}

// Default returns the V850 FPU allow-list.
func Default() Set {
	return New(V850FPU...)
}
