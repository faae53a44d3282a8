package validation

import (
	"errors"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type demandeForm struct {
	Nom       string      `form:"nom" validate:"notblank"`
	Email     string      `form:"email" validate:"required,email"`
	Telephone null.String `form:"telephone" validate:"omitempty,phone_fr"`
	Quantite  null.Int    `form:"quantite" validate:"omitempty,gte=1"`
}

func TestValidate_FieldNamesAndMessages(t *testing.T) {
	v := New()

	err := v.Validate(&demandeForm{Nom: "   ", Email: "pas-un-email"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, map[string]string{
		"nom":   "Ce champ est obligatoire.",
		"email": "Adresse e-mail invalide.",
	}, fields)
}

func TestValidate_NullTypes(t *testing.T) {
	v := New()

	// Пустые null-поля пропускаются через omitempty.
	assert.NoError(t, v.Validate(&demandeForm{Nom: "Diallo", Email: "a@b.fr"}))

	err := v.Validate(&demandeForm{Nom: "Diallo", Email: "a@b.fr", Quantite: null.IntFrom(0)})
	assert.Contains(t, FieldErrors(err), "quantite")

	assert.NoError(t, v.Validate(&demandeForm{Nom: "Diallo", Email: "a@b.fr", Quantite: null.IntFrom(3)}))

	// Заданная, но пустая строка тоже проверяется.
	err = v.Validate(&demandeForm{Nom: "Diallo", Email: "a@b.fr", Telephone: null.StringFrom("")})
	assert.Contains(t, FieldErrors(err), "telephone")
}

type affectationForm struct {
	Technicien null.Int `form:"technicien" validate:"omitempty,gt=0"`
}

func TestValidate_NullIntZeroIsChecked(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&affectationForm{}))
	err := v.Validate(&affectationForm{Technicien: null.IntFrom(0)})
	assert.Contains(t, FieldErrors(err), "technicien")
}

func TestPhoneFR(t *testing.T) {
	v := New()
	cases := map[string]bool{
		"0612345678":     true,
		"06 12 34 56 78": true,
		"06.12.34.56.78": true,
		"+33612345678":   true,
		"0012345678":     false,
		"12345":          false,
		"06 12 34 56":    false,
	}
	for phone, ok := range cases {
		t.Run(phone, func(t *testing.T) {
			err := v.Validate(&demandeForm{Nom: "Diallo", Email: "a@b.fr", Telephone: null.StringFrom(phone)})
			if ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, "Numéro de téléphone invalide.", FieldErrors(err)["telephone"])
		})
	}
}

func TestFieldErrors_OtherErrors(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("boom")))
	assert.Nil(t, FieldErrors(nil))
}
