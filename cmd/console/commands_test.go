package main

import (
	"flag"
	"fmt"
	"testing"

	response "polarizados_ya/internal/adapter/http/dto/response"
	"polarizados_ya/internal/console/apiclient"
	"polarizados_ya/internal/console/camera"
	"polarizados_ya/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageFlags(t *testing.T) {
	var d damageFlags
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.Var(&d, "damage", "")

	require.NoError(t, fs.Parse([]string{"-damage", "hood=poor:rayón profundo", "-damage", "roof=fair"}))
	require.Len(t, d, 2)
	assert.Equal(t, damageEntry{area: "hood", condition: entities.ConditionPoor, notes: "rayón profundo"}, d[0])
	assert.Equal(t, damageEntry{area: "roof", condition: entities.ConditionFair}, d[1])
	assert.Equal(t, "hood=poor,roof=fair", d.String())

	assert.Error(t, d.Set("hood"))
	assert.Error(t, d.Set("=poor"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"polarizado", "nanoceramica"}, splitList(" polarizado, ,nanoceramica "))
	assert.Empty(t, splitList(""))
}

func TestFindTechnician(t *testing.T) {
	list := []response.UserResponse{{ID: "t-1", Email: "pedro@shop.test"}, {ID: "t-2", Email: "luis@shop.test"}}

	u, ok := findTechnician(list, "t-2")
	assert.True(t, ok)
	assert.Equal(t, "luis@shop.test", u.Email)

	u, ok = findTechnician(list, "PEDRO@shop.test")
	assert.True(t, ok)
	assert.Equal(t, "t-1", u.ID)

	_, ok = findTechnician(list, "nadie")
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	rej := fmt.Errorf("create: %w", &apiclient.ServerRejectionError{StatusCode: 409, Detail: "La placa ya existe"})
	assert.Equal(t, "el servidor rechazó la operación (409): La placa ya existe", describe(rej))
	assert.Equal(t, "la sesión expiró, vuelve a iniciar sesión", describe(apiclient.ErrSessionExpired))
	assert.Contains(t, describe(fmt.Errorf("open: %w", camera.ErrDeviceAccess)), "no se pudo acceder a la cámara")
	assert.Equal(t, "plate: indica la placa", describe(apiclient.NewValidationError("plate", "indica la placa")))
}
