package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/groupcode/internal/code"
	"github.com/ugaemi/groupcode/internal/group"
	"github.com/ugaemi/groupcode/internal/store"
)

func ptr[T any](v T) *T { return &v }

// newCommandContext returns a context with no command selected.
func newCommandContext(memory bool) *CommandContext {
	return &CommandContext{
		Memory:         ptr(memory),
		AllocateUsed:   ptr(false),
		AllocateKind:   ptr(""),
		RegenerateUsed: ptr(false),
		RegenerateOld:  ptr(""),
		RegenerateKind: ptr(""),
		ValidateUsed:   ptr(false),
		ValidateCode:   ptr(""),
		ValidateKind:   ptr(""),
		DetectUsed:     ptr(false),
		DetectCode:     ptr(""),
		NormalizeUsed:  ptr(false),
		NormalizeRaw:   ptr(""),
		CreateUsed:     ptr(false),
		CreateKind:     ptr(""),
		CreateName:     ptr(""),
		RotateUsed:     ptr(false),
		RotateKind:     ptr(""),
		RotateCode:     ptr(""),
		FindUsed:       ptr(false),
		FindCode:       ptr(""),
	}
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KINDS_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CODE_SECURE_RANDOM", "")
}

func TestParseKind(t *testing.T) {
	kind, err := parseKind("Class")
	require.NoError(t, err)
	assert.Equal(t, code.Class, kind)

	_, err = parseKind("district")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want school or class")
}

func TestRequirePersistent(t *testing.T) {
	assert.NoError(t, requirePersistent("find", false))
	assert.Error(t, requirePersistent("find", true))
}

func TestExecuteCommand_Allocate(t *testing.T) {
	setupEnv(t)
	ctx := newCommandContext(true)
	*ctx.AllocateUsed = true
	*ctx.AllocateKind = "class"

	var out bytes.Buffer
	require.NoError(t, executeCommand(ctx, &out))

	assert.Contains(t, out.String(), "(1 attempt)")
	assert.Regexp(t, `C[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{5}`, out.String())
}

func TestExecuteCommand_AllocateBadKind(t *testing.T) {
	setupEnv(t)
	ctx := newCommandContext(true)
	*ctx.AllocateUsed = true
	*ctx.AllocateKind = "district"

	var out bytes.Buffer
	err := executeCommand(ctx, &out)

	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestExecuteCommand_Regenerate(t *testing.T) {
	setupEnv(t)
	ctx := newCommandContext(true)
	*ctx.RegenerateUsed = true
	*ctx.RegenerateOld = " s7k9qx "
	*ctx.RegenerateKind = "school"

	var out bytes.Buffer
	require.NoError(t, executeCommand(ctx, &out))
	assert.Contains(t, out.String(), "S7K9QX -> ")
}

func TestExecuteCommand_Validate(t *testing.T) {
	setupEnv(t)

	t.Run("unused code", func(t *testing.T) {
		ctx := newCommandContext(true)
		*ctx.ValidateUsed = true
		*ctx.ValidateCode = "S7K9QX"
		*ctx.ValidateKind = "school"

		var out bytes.Buffer
		require.NoError(t, executeCommand(ctx, &out))
		assert.Contains(t, out.String(), "S7K9QX is a valid, unused school code")
	})

	t.Run("wrong prefix", func(t *testing.T) {
		ctx := newCommandContext(true)
		*ctx.ValidateUsed = true
		*ctx.ValidateCode = "X12345"
		*ctx.ValidateKind = "school"

		err := executeCommand(ctx, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a valid school code")
	})
}

func TestExecuteCommand_DetectAndNormalize(t *testing.T) {
	setupEnv(t)

	ctx := newCommandContext(false)
	*ctx.DetectUsed = true
	*ctx.DetectCode = "c7k9qx"
	var out bytes.Buffer
	require.NoError(t, executeCommand(ctx, &out))
	assert.Equal(t, "class\n", out.String())

	ctx = newCommandContext(false)
	*ctx.DetectUsed = true
	*ctx.DetectCode = "Q7K9QX"
	assert.Error(t, executeCommand(ctx, &bytes.Buffer{}))

	ctx = newCommandContext(false)
	*ctx.NormalizeUsed = true
	*ctx.NormalizeRaw = " s123ab "
	out.Reset()
	require.NoError(t, executeCommand(ctx, &out))
	assert.Equal(t, "S123AB\n", out.String())
}

func TestExecuteCommand_Create(t *testing.T) {
	setupEnv(t)
	ctx := newCommandContext(true)
	*ctx.CreateUsed = true
	*ctx.CreateKind = "school"
	*ctx.CreateName = "Riverside High"

	var out bytes.Buffer
	require.NoError(t, executeCommand(ctx, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "discarded on exit")
	assert.Contains(t, lines[1], "created school group Riverside High")
}

func TestExecuteCommand_RotateAndFindRejectMemory(t *testing.T) {
	setupEnv(t)

	ctx := newCommandContext(true)
	*ctx.RotateUsed = true
	*ctx.RotateKind = "class"
	*ctx.RotateCode = "CAAAAA"
	err := executeCommand(ctx, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--memory")

	ctx = newCommandContext(true)
	*ctx.FindUsed = true
	*ctx.FindCode = "CAAAAA"
	err = executeCommand(ctx, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--memory")
}

func TestExecuteCommand_NoCommand(t *testing.T) {
	var out bytes.Buffer
	assert.NoError(t, executeCommand(newCommandContext(false), &out))
	assert.Empty(t, out.String())
}

func TestAttemptsLabel(t *testing.T) {
	assert.Equal(t, "(1 attempt)", attemptsLabel(1))
	assert.Equal(t, "(3 attempts)", attemptsLabel(3))
}

func TestDescribeValidation_FromValidator(t *testing.T) {
	groups := store.NewMemoryStore()
	ctx := context.Background()
	table := code.DefaultTable()
	cfg, _ := table.For(code.School)
	require.NoError(t, groups.Create(ctx, store.TableFor(code.School, cfg), group.New(code.School, "Riverside", "S7K9QX")))
	v := code.NewValidator(table, groups)

	tests := []struct {
		name string
		code string
		want string
	}{
		{"malformed", "X12345", "X12345 is not a valid school code: malformed code"},
		{"available", "SABCDE", "SABCDE is a valid, unused school code"},
		{"taken", "S7K9QX", "S7K9QX is already used in school_groups"},
		{"taken lower-case prefix", "s7K9QX", "s7K9QX is already used in school_groups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeValidation(tt.code, code.School, v.Validate(ctx, tt.code, code.School))
			assert.True(t, strings.HasPrefix(got, tt.want), "got %q", got)
		})
	}
}

func TestDescribeValidation_LookupFailed(t *testing.T) {
	result := code.ValidationResult{Valid: true, Err: errors.New("timeout")}

	assert.Equal(t, "X12345 could not be checked: timeout", describeValidation("X12345", code.School, result))
}

func TestDescribeGroup(t *testing.T) {
	g := group.New(code.Class, "", "CAAAAA")

	out := describeGroup(g)

	assert.Contains(t, out, "class group (unnamed)")
	assert.Contains(t, out, "CAAAAA")
	assert.Contains(t, out, g.ID)
}
