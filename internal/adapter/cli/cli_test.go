package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"tasknest/internal/adapter/cli"
	"tasknest/internal/adapter/cli/dto"
	"tasknest/internal/adapter/storage"
	"tasknest/internal/app/service"
	"tasknest/pkg/apierrors"
	"tasknest/pkg/translator"
)

func TestMain(m *testing.M) {
	translator.Translator = i18n.NewBundle(language.English)
	err := translator.Translator.AddMessages(language.English,
		&i18n.Message{ID: apierrors.MsgValidationFailed, Other: "Validation error"},
		&i18n.Message{ID: apierrors.MsgTaskNotFound, Other: "Task not found"},
		&i18n.Message{ID: apierrors.MsgStorageFailure, Other: "Storage failure"},
	)
	if err != nil {
		return
	}
	m.Run()
}

func newApp(t *testing.T) (*cli.App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	app := &cli.App{
		Tasks:  service.NewTaskService(store, 0),
		Search: service.NewSearchService(),
		Lang:   translator.LanguageEn,
		Out:    out,
		ErrOut: errOut,
	}
	return app, out, errOut
}

func TestApp_AddThenListJSON(t *testing.T) {
	app, out, _ := newApp(t)
	ctx := context.Background()

	code := app.Run(ctx, []string{"add", "-priority", "low", "Buy", "milk"})
	require.Equal(t, apierrors.CodeOK, code)
	assert.Contains(t, out.String(), "Task added:")

	out.Reset()
	code = app.Run(ctx, []string{"list", "-json"})
	require.Equal(t, apierrors.CodeOK, code)

	var got dto.ListResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "Buy milk", got.Tasks[0].Description)
	assert.Equal(t, "low", got.Tasks[0].Priority)
	assert.False(t, got.Tasks[0].Completed)
}

func TestApp_UnknownTaskExitCode(t *testing.T) {
	app, _, errOut := newApp(t)

	code := app.Run(context.Background(), []string{"complete", "00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, apierrors.CodeNotFound, code)
	assert.Contains(t, errOut.String(), "Task not found")
}

func TestApp_ValidationExitCode(t *testing.T) {
	app, _, _ := newApp(t)

	code := app.Run(context.Background(), []string{"add", "-priority", "urgent", "x"})
	assert.Equal(t, apierrors.CodeValidation, code)
}

func TestApp_UnknownCommand(t *testing.T) {
	app, _, errOut := newApp(t)

	code := app.Run(context.Background(), []string{"frobnicate"})
	assert.Equal(t, apierrors.CodeValidation, code)
	assert.Contains(t, errOut.String(), "Usage:")
}
