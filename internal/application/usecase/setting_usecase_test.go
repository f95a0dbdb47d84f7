package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

const testCompanyID = "00000000-0000-0000-0000-0000000000aa"

// fakeSettingRepo guarda los settings en memoria, clave por clave.
type fakeSettingRepo struct {
	byKey map[string]*entity.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{byKey: make(map[string]*entity.Setting)}
}

func (r *fakeSettingRepo) GetAllByCompany(string) ([]*entity.Setting, error) {
	out := make([]*entity.Setting, 0, len(r.byKey))
	for _, s := range r.byKey {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSettingRepo) Upsert(s *entity.Setting) error {
	r.byKey[s.Key] = s
	return nil
}

func TestSettings_GetSinGuardadosRetornaDefaults(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	got, err := uc.Get(testCompanyID)

	require.NoError(t, err)
	assert.JSONEq(t, `"COP"`, string(got.Settings["currency"]))
	assert.JSONEq(t, `10`, string(got.Settings["low_stock_threshold"]))
	assert.JSONEq(t, `true`, string(got.Settings["notifications_on"]))
}

func TestSettings_LoGuardadoPisaElDefault(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	_, err := uc.Update(testCompanyID, dto.UpdateSettingsRequest{Settings: map[string]json.RawMessage{
		"store_name": json.RawMessage(`"Droguería El Centro"`),
	}})
	require.NoError(t, err)

	got, err := uc.Get(testCompanyID)
	require.NoError(t, err)
	assert.JSONEq(t, `"Droguería El Centro"`, string(got.Settings["store_name"]))
	assert.JSONEq(t, `"COP"`, string(got.Settings["currency"]),
		"las claves no tocadas conservan su default")
}

func TestSettings_UpdateParcialNoBorraOtrasClaves(t *testing.T) {
	repo := newFakeSettingRepo()
	uc := usecase.NewSettingUseCase(repo)

	_, err := uc.Update(testCompanyID, dto.UpdateSettingsRequest{Settings: map[string]json.RawMessage{
		"store_name": json.RawMessage(`"Droguería El Centro"`),
	}})
	require.NoError(t, err)

	got, err := uc.Update(testCompanyID, dto.UpdateSettingsRequest{Settings: map[string]json.RawMessage{
		"low_stock_threshold": json.RawMessage(`25`),
	}})
	require.NoError(t, err)

	assert.JSONEq(t, `"Droguería El Centro"`, string(got.Settings["store_name"]),
		"actualizar una clave no debe pisar las demás")
	assert.JSONEq(t, `25`, string(got.Settings["low_stock_threshold"]))
}

func TestSettings_JSONInvalidoEsError(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	_, err := uc.Update(testCompanyID, dto.UpdateSettingsRequest{Settings: map[string]json.RawMessage{
		"store_name": json.RawMessage(`{"sin cerrar`),
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettings_UpdateVacioEsError(t *testing.T) {
	uc := usecase.NewSettingUseCase(newFakeSettingRepo())

	_, err := uc.Update(testCompanyID, dto.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
