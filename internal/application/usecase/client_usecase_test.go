package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/reservas-api/internal/application/dto"
	"github.com/tu-usuario/reservas-api/internal/application/usecase"
	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/memory"
)

func newClientUC(t *testing.T) (*usecase.ClientUseCase, *memory.ClientRepo) {
	t.Helper()
	repo := memory.NewClientRepository()
	return usecase.NewClientUseCase(repo), repo
}

func TestClientCreate_Validaciones(t *testing.T) {
	uc, _ := newClientUC(t)

	_, err := uc.Create(dto.CreateClientRequest{Name: "", Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "name vacío debe rechazarse")

	_, err = uc.Create(dto.CreateClientRequest{Name: "Ana", Email: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "email vacío debe rechazarse")

	_, err = uc.Create(dto.CreateClientRequest{
		Name: "Ana", Email: "ana@test.com", Balance: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "saldo inicial negativo debe rechazarse")

	out, err := uc.Create(dto.CreateClientRequest{
		Name: "Ana", Email: "ana@test.com", Balance: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(50)))
}

func TestClientRecharge(t *testing.T) {
	uc, _ := newClientUC(t)
	created, err := uc.Create(dto.CreateClientRequest{
		Name: "Ana", Email: "ana@test.com", Balance: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = uc.Recharge(created.ID, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "recargar cero debe rechazarse")

	_, err = uc.Recharge(created.ID, decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "recargar un monto negativo debe rechazarse")

	out, err := uc.Recharge(created.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(50)),
		"el saldo debe ser 10+40 = 50, fue %s", out.Balance)

	missing, err := uc.Recharge(999, decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Nil(t, missing, "recargar un cliente inexistente debe retornar nil")
}

// La búsqueda ignora mayúsculas y acentos: "jose" encuentra a "José".
func TestClientSearch_InsensibleAAcentos(t *testing.T) {
	uc, _ := newClientUC(t)
	seed := []dto.CreateClientRequest{
		{Name: "José", LastName: "García", Email: "jose@test.com"},
		{Name: "Jean", LastName: "Dujardin", Email: "jean@test.com"},
		{Name: "Ana", LastName: "Muñoz", Email: "ana@test.com"},
	}
	for _, in := range seed {
		_, err := uc.Create(in)
		require.NoError(t, err)
	}

	results, err := uc.Search("jose")
	require.NoError(t, err)
	require.Len(t, results, 1, `"jose" debe encontrar a José`)
	assert.Equal(t, "José", results[0].Name)

	results, err = uc.Search("MUNOZ")
	require.NoError(t, err)
	require.Len(t, results, 1, `"MUNOZ" debe encontrar a Muñoz por apellido`)
	assert.Equal(t, "Ana", results[0].Name)

	results, err = uc.Search("j")
	require.NoError(t, err)
	assert.Len(t, results, 2, "la búsqueda es por substring")

	_, err = uc.Search("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una consulta vacía debe rechazarse")
}

func TestClientUpdate_NoTocaElSaldo(t *testing.T) {
	uc, repo := newClientUC(t)
	created, err := uc.Create(dto.CreateClientRequest{
		Name: "Ana", Email: "ana@test.com", Balance: decimal.NewFromInt(77),
	})
	require.NoError(t, err)

	newName := "Anabel"
	out, err := uc.Update(created.ID, dto.UpdateClientRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Anabel", out.Name)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(77)), "update no debe tocar el saldo")

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@test.com", stored.Email, "los campos no enviados no deben cambiar")
}

func TestClientDebit_SaldoInsuficiente(t *testing.T) {
	uc, repo := newClientUC(t)
	created, err := uc.Create(dto.CreateClientRequest{
		Name: "Ana", Email: "ana@test.com", Balance: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	err = repo.Debit(created.ID, decimal.NewFromInt(11))
	require.Error(t, err, "debitar más que el saldo debe fallar")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	stored, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(10)), "el saldo no debe cambiar tras el rechazo")
}
