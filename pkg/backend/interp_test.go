package backend_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/raymyers/ralph-bf/pkg/backend"
	"github.com/raymyers/ralph-bf/pkg/ir"
	"github.com/raymyers/ralph-bf/pkg/translate"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

// run translates src, compiles it with the interpreter and runs it on a
// fresh tape with the given input.
func run(src, input string) (string, int32, error) {
	prog, err := translate.Translate([]byte(src), translate.Options{})
	Expect(err).NotTo(HaveOccurred())

	var out bytes.Buffer
	rt := backend.NewStreamRuntime(strings.NewReader(input), &out)
	entry, err := backend.NewInterp(rt).Compile(prog)
	Expect(err).NotTo(HaveOccurred())

	status, runErr := entry(backend.NewTape(prog.TapeSize))
	Expect(rt.Flush()).To(Succeed())
	return out.String(), status, runErr
}

var _ = Describe("Interp", func() {
	It("should output the incremented cell", func() {
		out, status, err := run("+++.", "")

		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal(int32(0)))
		Expect([]byte(out)).To(Equal([]byte{3}))
	})

	It("should echo input until end of input", func() {
		out, _, err := run(",[.,]", "ab")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("ab"))
	})

	It("should read zero at end of input", func() {
		out, _, err := run(",+.", "")

		Expect(err).NotTo(HaveOccurred())
		Expect([]byte(out)).To(Equal([]byte{1}))
	})

	It("should wrap cells silently", func() {
		out, _, err := run("-."+strings.Repeat("+", 256)+".", "")

		Expect(err).NotTo(HaveOccurred())
		Expect([]byte(out)).To(Equal([]byte{255, 255}))
	})

	It("should move values between cells", func() {
		out, _, err := run("+++++[>+++++<-]>.<.", "")

		Expect(err).NotTo(HaveOccurred())
		Expect([]byte(out)).To(Equal([]byte{25, 0}))
	})

	It("should skip a loop whose cell starts at zero", func() {
		out, _, err := run("[.]+.", "")

		Expect(err).NotTo(HaveOccurred())
		Expect([]byte(out)).To(Equal([]byte{1}))
	})

	It("should run nested loops", func() {
		out, _, err := run(helloWorld, "")

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Hello World!\n"))
	})

	It("should produce identical output from two translations", func() {
		src := ",[>+>+<<-]>[<+>-]>[.-]"
		first, _, err := run(src, "\x05")
		Expect(err).NotTo(HaveOccurred())
		second, _, err := run(src, "\x05")
		Expect(err).NotTo(HaveOccurred())

		Expect(first).To(Equal(second))
		Expect([]byte(first)).To(Equal([]byte{5, 4, 3, 2, 1}))
	})

	It("should report a pointer moved off the tape", func() {
		_, _, err := run("<+", "")

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, backend.ErrTapeBounds)).To(BeTrue())
	})

	It("should reject a tape smaller than the program needs", func() {
		prog, err := translate.Translate([]byte("+"), translate.Options{})
		Expect(err).NotTo(HaveOccurred())
		entry, err := backend.NewInterp(backend.NewStreamRuntime(nil, nil)).Compile(prog)
		Expect(err).NotTo(HaveOccurred())

		_, err = entry(make([]byte, 10))
		Expect(err).To(MatchError(ContainSubstring("tape has 10 cells")))
	})

	Context("when the program is malformed", func() {
		var prog *ir.Program

		BeforeEach(func() {
			prog = ir.NewProgram("broken", ir.MinTapeSize)
			prog.Entry = prog.NewBlock()
		})

		It("should fail with a compile error", func() {
			entry, err := backend.NewInterp(backend.NewStreamRuntime(nil, nil)).Compile(prog)

			Expect(entry).To(BeNil())
			Expect(errors.Is(err, backend.ErrCompile)).To(BeTrue())

			var cerr *backend.CompileError
			Expect(errors.As(err, &cerr)).To(BeTrue())
			Expect(cerr.Backend).To(Equal("interp"))

			var verr *ir.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
		})
	})

	It("should fail to compile without a runtime", func() {
		prog, err := translate.Translate([]byte("."), translate.Options{})
		Expect(err).NotTo(HaveOccurred())

		_, err = backend.NewInterp(nil).Compile(prog)
		Expect(errors.Is(err, backend.ErrCompile)).To(BeTrue())
	})

	It("should ignore blocks that cannot be reached", func() {
		prog := ir.NewProgram("dead", ir.MinTapeSize)
		entry := prog.NewBlock()
		dead := prog.NewBlock()
		prog.Entry = entry
		prog.Block(entry).Instrs = []ir.Instruction{
			ir.Iload{Offset: 0, Dest: 1},
			ir.Iop{Op: ir.Oaddimm{N: 7}, Args: []ir.Reg{1}, Dest: 2},
			ir.Icall{Fn: ir.PutChar, Args: []ir.Reg{2}},
		}
		prog.Block(entry).Term = ir.Ireturn{Value: 3}
		prog.Block(dead).Instrs = []ir.Instruction{ir.Icall{Fn: ir.PutChar, Args: []ir.Reg{1}}}
		prog.Block(dead).Term = ir.Ireturn{Value: 9}

		var out bytes.Buffer
		rt := backend.NewStreamRuntime(nil, &out)
		fn, err := backend.NewInterp(rt).Compile(prog)
		Expect(err).NotTo(HaveOccurred())

		status, err := fn(backend.NewTape(0))
		Expect(err).NotTo(HaveOccurred())
		Expect(rt.Flush()).To(Succeed())
		Expect(status).To(Equal(int32(3)))
		Expect(out.Bytes()).To(Equal([]byte{7}))
	})
})
