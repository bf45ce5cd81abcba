package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/amterp/ra"

	"github.com/ugaemi/groupcode/internal/code"
)

func registerAllocate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("allocate")
	cmd.SetDescription("Allocate an unused code")

	ctx.AllocateKind, _ = ra.NewString("kind").
		SetUsage("school or class").
		Register(cmd)

	ctx.AllocateUsed, _ = parent.RegisterCmd(cmd)
}

func registerRegenerate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("regenerate")
	cmd.SetDescription("Allocate a replacement for an existing code")

	ctx.RegenerateOld, _ = ra.NewString("old").
		SetUsage("Code being replaced").
		Register(cmd)

	ctx.RegenerateKind, _ = ra.NewString("kind").
		SetUsage("school or class").
		Register(cmd)

	ctx.RegenerateUsed, _ = parent.RegisterCmd(cmd)
}

func registerValidate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("validate")
	cmd.SetDescription("Check a code's format and availability")

	ctx.ValidateCode, _ = ra.NewString("code").
		SetUsage("Code to check").
		Register(cmd)

	ctx.ValidateKind, _ = ra.NewString("kind").
		SetUsage("school or class").
		Register(cmd)

	ctx.ValidateUsed, _ = parent.RegisterCmd(cmd)
}

func registerDetect(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("detect")
	cmd.SetDescription("Print the kind a code belongs to")

	ctx.DetectCode, _ = ra.NewString("code").
		SetUsage("Code to inspect").
		Register(cmd)

	ctx.DetectUsed, _ = parent.RegisterCmd(cmd)
}

func registerNormalize(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("normalize")
	cmd.SetDescription("Print a code trimmed and upper-cased")

	ctx.NormalizeRaw, _ = ra.NewString("raw").
		SetUsage("Code as typed").
		Register(cmd)

	ctx.NormalizeUsed, _ = parent.RegisterCmd(cmd)
}

func runAllocate(w io.Writer, kindName string, memory bool) error {
	ctx := context.Background()
	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, true, memory)
	if err != nil {
		return err
	}
	defer app.Close()

	result := app.Allocator.Allocate(ctx, kind)
	if !result.Succeeded() {
		return result.Err
	}
	printOK(w, "%s %s", showCode(result.Code), dim(attemptsLabel(result.Attempts)))
	return nil
}

func runRegenerate(w io.Writer, oldCode, kindName string, memory bool) error {
	ctx := context.Background()
	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, true, memory)
	if err != nil {
		return err
	}
	defer app.Close()

	old := code.Normalize(oldCode)
	result := app.Allocator.Regenerate(ctx, old, kind)
	if !result.Succeeded() {
		return result.Err
	}
	printOK(w, "%s -> %s %s", old, showCode(result.Code), dim(attemptsLabel(result.Attempts)))
	return nil
}

func runValidate(w io.Writer, c, kindName string, memory bool) error {
	ctx := context.Background()
	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, true, memory)
	if err != nil {
		return err
	}
	defer app.Close()

	result := app.Validator.Validate(ctx, c, kind)
	msg := describeValidation(c, kind, result)
	if !result.Valid || !result.Available {
		return errors.New(msg)
	}
	printOK(w, "%s", msg)
	return nil
}

func runDetect(w io.Writer, c string) error {
	app, err := NewApp(context.Background(), false, false)
	if err != nil {
		return err
	}

	kind, ok := app.Formatter.DetectKind(code.Normalize(c))
	if !ok {
		return fmt.Errorf("%q matches no kind", c)
	}
	fmt.Fprintln(w, kind.String())
	return nil
}

func runNormalize(w io.Writer, raw string) error {
	fmt.Fprintln(w, code.Normalize(raw))
	return nil
}

func attemptsLabel(n int) string {
	if n == 1 {
		return "(1 attempt)"
	}
	return fmt.Sprintf("(%d attempts)", n)
}

func describeValidation(c string, kind code.Kind, result code.ValidationResult) string {
	switch {
	case !result.Valid:
		return fmt.Sprintf("%s is not a valid %s code: %v", c, kind, result.Err)
	case result.Available:
		return fmt.Sprintf("%s is a valid, unused %s code", c, kind)
	case result.Conflict != nil:
		return fmt.Sprintf("%s is already used in %s", c, result.Conflict.Collection)
	default:
		return fmt.Sprintf("%s could not be checked: %v", c, result.Err)
	}
}
