package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Acceptée", DemandeStatusLabel(DemandeAcceptee))
	assert.Equal(t, "En attente", DemandeStatusLabel(DemandeEnAttente))
	assert.Equal(t, "En cours", InterventionStatusLabel(InterventionEnCours))
	// Неизвестный код показывается как есть.
	assert.Equal(t, "Archivee", DemandeStatusLabel("Archivee"))
}

func TestDemandeActionable(t *testing.T) {
	assert.True(t, IsDemandeActionable(DemandeNouvelle))
	assert.True(t, IsDemandeActionable(DemandeEnAttente))
	assert.False(t, IsDemandeActionable(DemandeAcceptee))
	assert.False(t, IsDemandeActionable(DemandeRejetee))
	assert.False(t, IsDemandeActionable(DemandeTerminee))
}

func TestFinalInterventionStatus(t *testing.T) {
	assert.False(t, IsFinalInterventionStatus(InterventionEnCours))
	assert.True(t, IsFinalInterventionStatus(InterventionTermine))
	assert.True(t, IsFinalInterventionStatus(InterventionIrreparable))
}
