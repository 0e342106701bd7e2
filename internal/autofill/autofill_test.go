package autofill

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/strategy"
	"github.com/jonathan/job-autofill/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func page(t *testing.T, url, raw string) Page {
	t.Helper()
	doc, err := dom.Parse(raw)
	require.NoError(t, err)
	return Page{Doc: doc, URL: url}
}

func TestRun_EndToEnd(t *testing.T) {
	pg := page(t, "https://careers.example.com/apply", `<form>
		<label for="f">First name</label><input id="f">
		<label for="l">Last name</label><input id="l">
		<label for="e">Email address</label><input id="e">
	</form>`)
	p := &types.Profile{FullName: "Jane Doe", Email: "jane@x.com"}

	report, err := Run(context.Background(), pg, p, nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, report.PassID)
	assert.Equal(t, "generic", report.Platform)
	assert.Equal(t, 3, report.FieldCount)
	require.Len(t, report.Mutations, 3)

	expected := []string{"Jane", "Doe", "jane@x.com"}
	for i, m := range report.Mutations {
		assert.Equal(t, i, m.Locator)
		assert.Equal(t, expected[i], m.Value)
		assert.Equal(t, []types.EventKind{types.EventInput, types.EventChange, types.EventBlur}, m.Events)
	}
}

func TestRun_SecondPassIsNoOp(t *testing.T) {
	pg := page(t, "https://boards.greenhouse.io/acme/jobs/1", `
		<input name="job_application[first_name]">
		<input name="job_application[email]">
		<label>City <input name="c"></label>`)
	p := &types.Profile{FullName: "Jane Doe", Email: "jane@x.com", City: "Austin"}

	first, err := Run(context.Background(), pg, p, nil)
	require.NoError(t, err)
	assert.Equal(t, "greenhouse", first.Platform)
	assert.Len(t, first.Mutations, 3)

	second, err := Run(context.Background(), pg, p, nil)
	require.NoError(t, err)
	assert.Empty(t, second.Mutations)
	assert.NotEqual(t, first.PassID, second.PassID)
}

func TestRun_BlockedContext(t *testing.T) {
	pg := page(t, "https://acme.com/careers/1", `
		<input name="email">
		<iframe id="grnhse_iframe" src="https://boards.greenhouse.io/embed/job_app?for=acme"></iframe>`)

	report, err := Run(context.Background(), pg, &types.Profile{Email: "jane@x.com"}, nil)

	var blocked *BlockedContextError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, "https://boards.greenhouse.io/embed/job_app?for=acme", blocked.EmbeddedURL)
	assert.Equal(t, "https://boards.greenhouse.io/embed/job_app?for=acme", report.EmbeddedURL)
	assert.True(t, strings.HasPrefix(report.Instruction, BlockedInstruction))
	assert.Contains(t, report.Instruction, "https://boards.greenhouse.io/embed/job_app?for=acme")
	assert.Equal(t, report.Instruction, blocked.Instruction)
	assert.Empty(t, report.Mutations)
	assert.Empty(t, pg.Doc.Fields()[0].Value())
}

func TestRun_InsideGreenhouseFrame(t *testing.T) {
	pg := page(t, "https://boards.greenhouse.io/embed/job_app", `<input name="job_application[email]">`)
	pg.InFrame = true

	report, err := Run(context.Background(), pg, &types.Profile{Email: "jane@x.com"}, nil)
	require.NoError(t, err)
	assert.True(t, report.InFrame)
	assert.Equal(t, "greenhouse", report.Platform)
	require.Len(t, report.Mutations, 1)
	assert.Equal(t, "greenhouse.email", report.Mutations[0].Source)
}

func TestRun_RecoversFaultAndKeepsWrites(t *testing.T) {
	original := dispatch
	t.Cleanup(func() { dispatch = original })
	dispatch = func(setter *dom.Setter, _ *zap.Logger, _ strategy.Platform, doc *dom.Document, _ *types.Profile) strategy.Result {
		setter.Apply(dom.SetValue(doc.Fields()[0], "kept", "test"))
		panic("selector exploded")
	}

	core, logs := observer.New(zap.ErrorLevel)
	pg := page(t, "https://example.com", `<input name="a"><input name="b">`)

	report, err := Run(context.Background(), pg, &types.Profile{}, zap.New(core))
	require.NoError(t, err)
	assert.Contains(t, report.Fault, "selector exploded")
	require.Len(t, report.Mutations, 1)
	assert.Equal(t, "kept", pg.Doc.Fields()[0].Value())
	assert.Equal(t, 1, logs.FilterMessage("autofill pass failed").Len())
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(context.Background(), Page{}, nil, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Run(ctx, page(t, "", `<input>`), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NilProfileWritesNothing(t *testing.T) {
	report, err := Run(context.Background(), page(t, "", `<input name="email">`), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Mutations)
}
