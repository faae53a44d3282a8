package formstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginValues struct {
	Username string
	Password string
}

func TestForm_HappyPath(t *testing.T) {
	f := New(loginValues{})
	assert.Equal(t, Pristine, f.Phase)

	require.NoError(t, f.Edit(loginValues{Username: "tech", Password: "x"}))
	assert.Equal(t, Dirty, f.Phase)

	require.NoError(t, f.Submit())
	assert.Equal(t, Submitting, f.Phase)

	require.NoError(t, f.Succeed("ok"))
	assert.True(t, f.Settled())
	assert.Equal(t, "ok", f.Message)
}

func TestForm_FailThenRetry(t *testing.T) {
	f := New(loginValues{})
	require.NoError(t, f.Edit(loginValues{Username: "tech"}))
	require.NoError(t, f.Submit())
	require.NoError(t, f.Fail("invalide", map[string]string{"password": "Ce champ est obligatoire."}))

	assert.Equal(t, Failed, f.Phase)
	assert.True(t, f.HasError("password"))
	assert.Equal(t, "Ce champ est obligatoire.", f.Error("password"))

	require.NoError(t, f.Edit(loginValues{Username: "tech", Password: "x"}))
	assert.Equal(t, Dirty, f.Phase)
	assert.Empty(t, f.FieldErrors)
	assert.Empty(t, f.Message)
}

func TestForm_InvalidTransitions(t *testing.T) {
	f := New(loginValues{})
	assert.Error(t, f.Submit(), "pristine form cannot be submitted")

	require.NoError(t, f.Edit(loginValues{}))
	assert.Error(t, f.Succeed(""), "dirty form cannot succeed without submit")

	require.NoError(t, f.Submit())
	require.NoError(t, f.Succeed(""))
	assert.Error(t, f.Edit(loginValues{}), "succeeded form is final")
}
