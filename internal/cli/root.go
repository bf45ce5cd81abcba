package cli

import (
	"io"
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	Memory *bool

	AllocateUsed *bool
	AllocateKind *string

	RegenerateUsed *bool
	RegenerateOld  *string
	RegenerateKind *string

	ValidateUsed *bool
	ValidateCode *string
	ValidateKind *string

	DetectUsed *bool
	DetectCode *string

	NormalizeUsed *bool
	NormalizeRaw  *string

	CreateUsed *bool
	CreateKind *string
	CreateName *string

	RotateUsed *bool
	RotateKind *string
	RotateCode *string

	FindUsed *bool
	FindCode *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("groupcode")
	cmd.SetDescription("Allocate and check school and class join codes")

	ctx.Memory, _ = ra.NewBool("memory").
		SetShort("m").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Use an empty in-memory store instead of PostgreSQL").
		Register(cmd, ra.WithGlobal(true))

	registerAllocate(cmd, ctx)
	registerRegenerate(cmd, ctx)
	registerValidate(cmd, ctx)
	registerDetect(cmd, ctx)
	registerNormalize(cmd, ctx)
	registerCreate(cmd, ctx)
	registerRotate(cmd, ctx)
	registerFind(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	if err := executeCommand(ctx, os.Stdout); err != nil {
		Fatal(err)
	}
}

func executeCommand(ctx *CommandContext, w io.Writer) error {
	switch {
	case *ctx.AllocateUsed:
		return runAllocate(w, *ctx.AllocateKind, *ctx.Memory)

	case *ctx.RegenerateUsed:
		return runRegenerate(w, *ctx.RegenerateOld, *ctx.RegenerateKind, *ctx.Memory)

	case *ctx.ValidateUsed:
		return runValidate(w, *ctx.ValidateCode, *ctx.ValidateKind, *ctx.Memory)

	case *ctx.DetectUsed:
		return runDetect(w, *ctx.DetectCode)

	case *ctx.NormalizeUsed:
		return runNormalize(w, *ctx.NormalizeRaw)

	case *ctx.CreateUsed:
		return runCreate(w, *ctx.CreateKind, *ctx.CreateName, *ctx.Memory)

	case *ctx.RotateUsed:
		return runRotate(w, *ctx.RotateKind, *ctx.RotateCode, *ctx.Memory)

	case *ctx.FindUsed:
		return runFind(w, *ctx.FindCode, *ctx.Memory)
	}
	return nil
}
