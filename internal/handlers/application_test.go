package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerRequestDataLeavesSharedUntouched(t *testing.T) {
	shared := gin.H{
		"Title":         "Some App",
		"TotalComments": 3,
	}

	hData := perRequestData(shared)
	hData["HasDownloaded"] = true
	hData["Title"] = "changed"

	// The cached map must never see per-request keys or mutations
	_, leaked := shared["HasDownloaded"]
	assert.False(t, leaked)
	assert.Equal(t, "Some App", shared["Title"])

	require.Equal(t, 3, hData["TotalComments"])
}
