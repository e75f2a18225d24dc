package idmap_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"guardgen/internal/idmap"
)

var _ = Describe("V850 rules", func() {
	var m *idmap.Mapper

	BeforeEach(func() {
		m = idmap.V850()
	})

	DescribeTable("mapping a name",
		func(name, id, raw, format string) {
			Expect(m.ID(name)).To(Equal(id))
			Expect(m.Raw(name)).To(Equal(raw))
			Expect(m.Format(name)).To(Equal(format))
		},
		Entry("opcode bits", "op0510", "OP(05, 10)", "op0510", "%x"),
		Entry("opcode bits, wide", "op1626", "OP(16, 26)", "op1626", "%x"),
		Entry("first register", "R0004", "R1", "get_reg1(inst)", "%s"),
		Entry("second register", "R1115", "R2", "get_reg2(inst)", "%s"),
		Entry("third register", "R2731", "R3", "get_reg3(inst)", "%s"),
		Entry("register at unknown offset", "R1620", "R1620", "R1620", "%s"),
		Entry("condition bit", "fcbit1719", "slice(inst->d, 17, 19)", "slice(inst->d, 17, 19)", "%d"),
		Entry("condition code", "fcond2730", "conds[slice(inst->d, 27, 30)]", "slice(inst->d, 27, 30)", "%s"),
		Entry("fourth register", "reg4", "R4", "get_reg4(inst)", "%s"),
		Entry("unknown name", "imm16", "imm16", "imm16", "%s"),
	)

	DescribeTable("names too short for their rule",
		func(name string) {
			Expect(m.ID(name)).To(Equal(name))
			Expect(m.Raw(name)).To(Equal(name))
		},
		Entry("bare opcode prefix", "op"),
		Entry("truncated opcode", "op05"),
		Entry("truncated register", "R00"),
		Entry("truncated condition bit", "fcbit17"),
		Entry("truncated condition code", "fcond"),
	)

	It("does not confuse reg4 with a longer name", func() {
		Expect(m.ID("reg41")).To(Equal("reg41"))
		Expect(m.Known("reg41")).To(BeFalse())
		Expect(m.Known("reg4")).To(BeTrue())
	})

	It("is deterministic across calls", func() {
		for _, name := range []string{"op0510", "R2731", "fcond2730", "reg4", "other"} {
			id, raw, format := m.ID(name), m.Raw(name), m.Format(name)
			for i := 0; i < 3; i++ {
				Expect(m.ID(name)).To(Equal(id))
				Expect(m.Raw(name)).To(Equal(raw))
				Expect(idmap.V850().Format(name)).To(Equal(format))
			}
		}
	})
})

var _ = Describe("Mapper", func() {
	It("uses the first matching rule", func() {
		m := idmap.New(
			idmap.Rule{
				Name:   "upper",
				Match:  func(name string) bool { return strings.HasPrefix(name, "x") },
				ID:     func(name string) (string, bool) { return strings.ToUpper(name), true },
				Format: "%u",
			},
			idmap.Rule{
				Name:   "shadowed",
				Match:  func(name string) bool { return name == "xy" },
				ID:     func(string) (string, bool) { return "never", true },
				Format: "%p",
			},
		)

		Expect(m.ID("xy")).To(Equal("XY"))
		Expect(m.Format("xy")).To(Equal("%u"))
		Expect(m.Raw("xy")).To(Equal("xy"))
	})

	It("falls back to identity and %s without rules", func() {
		m := idmap.New()
		Expect(m.ID("anything")).To(Equal("anything"))
		Expect(m.Raw("anything")).To(Equal("anything"))
		Expect(m.Format("anything")).To(Equal(idmap.DefaultFormat))
	})

	It("uses the default format when a rule leaves it empty", func() {
		m := idmap.New(idmap.Rule{Match: func(string) bool { return true }})
		Expect(m.Format("f")).To(Equal("%s"))
	})

	It("returns a copy of its rules", func() {
		m := idmap.V850()
		rules := m.Rules()
		Expect(rules).To(HaveLen(5))
		rules[0].Match = func(string) bool { return false }
		Expect(m.ID("op0510")).To(Equal("OP(05, 10)"))
	})

	DescribeTable("names the instruction variable it was built for",
		func(name, id, raw string) {
			m := idmap.V850For("ins")
			Expect(m.ID(name)).To(Equal(id))
			Expect(m.Raw(name)).To(Equal(raw))
		},
		Entry("register", "R1115", "R2", "get_reg2(ins)"),
		Entry("condition bit", "fcbit1719", "slice(ins->d, 17, 19)", "slice(ins->d, 17, 19)"),
		Entry("condition code", "fcond2730", "conds[slice(ins->d, 27, 30)]", "slice(ins->d, 27, 30)"),
		Entry("fourth register", "reg4", "R4", "get_reg4(ins)"),
	)
})
