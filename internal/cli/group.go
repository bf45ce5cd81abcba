package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/amterp/ra"

	"github.com/ugaemi/groupcode/internal/group"
)

func registerCreate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("create")
	cmd.SetDescription("Create a group with a fresh code")

	ctx.CreateKind, _ = ra.NewString("kind").
		SetUsage("school or class").
		Register(cmd)

	ctx.CreateName, _ = ra.NewString("name").
		SetOptional(true).
		SetUsage("Group name").
		Register(cmd)

	ctx.CreateUsed, _ = parent.RegisterCmd(cmd)
}

func registerRotate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("rotate")
	cmd.SetDescription("Replace a group's code with a fresh one")

	ctx.RotateKind, _ = ra.NewString("kind").
		SetUsage("school or class").
		Register(cmd)

	ctx.RotateCode, _ = ra.NewString("code").
		SetUsage("Current code of the group").
		Register(cmd)

	ctx.RotateUsed, _ = parent.RegisterCmd(cmd)
}

func registerFind(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("find")
	cmd.SetDescription("Show the group holding a code")

	ctx.FindCode, _ = ra.NewString("code").
		SetUsage("Code as typed").
		Register(cmd)

	ctx.FindUsed, _ = parent.RegisterCmd(cmd)
}

func runCreate(w io.Writer, kindName, name string, memory bool) error {
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

	if memory {
		printNote(w, "in-memory store: the group is discarded on exit")
	}

	g, err := app.Registry.Create(ctx, kind, name)
	if err != nil {
		return err
	}
	printOK(w, "created %s", describeGroup(g))
	return nil
}

func runRotate(w io.Writer, kindName, c string, memory bool) error {
	ctx := context.Background()
	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}
	if err := requirePersistent("rotate", memory); err != nil {
		return err
	}

	app, err := NewApp(ctx, true, memory)
	if err != nil {
		return err
	}
	defer app.Close()

	g, err := app.Registry.Rotate(ctx, kind, c)
	if err != nil {
		return err
	}
	printOK(w, "rotated %s", describeGroup(g))
	return nil
}

func runFind(w io.Writer, c string, memory bool) error {
	ctx := context.Background()
	if err := requirePersistent("find", memory); err != nil {
		return err
	}

	app, err := NewApp(ctx, true, memory)
	if err != nil {
		return err
	}
	defer app.Close()

	g, err := app.Registry.Find(ctx, c)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, describeGroup(g))
	return nil
}

func describeGroup(g *group.Group) string {
	name := g.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s group %s %s %s", g.Kind, name, showCode(g.Code), dim(g.ID))
}
