package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/ledger"
)

func TestFormatReception(t *testing.T) {
	assert.Equal(t, "REC-00001", ledger.FormatReception(1))
	assert.Equal(t, "REC-00042", ledger.FormatReception(42))
	// más de cinco dígitos no se trunca
	assert.Equal(t, "REC-123456", ledger.FormatReception(123456))
}

func TestFormatCorrection(t *testing.T) {
	assert.Equal(t, "COR-00001", ledger.FormatCorrection(1))
	assert.Equal(t, "COR-00100", ledger.FormatCorrection(100))
}

func TestUnitCode_Determinista(t *testing.T) {
	a := ledger.UnitCode("REC-00001")
	b := ledger.UnitCode("REC-00001")
	assert.Equal(t, a, b, "el mismo consecutivo produce siempre el mismo código")
}

func TestUnitCode_Forma(t *testing.T) {
	code := ledger.UnitCode("REC-00001")
	assert.Len(t, code, 11, "prefijo U + 10 caracteres base32")
	assert.True(t, strings.HasPrefix(code, "U"))
	// base32 estándar: sin minúsculas
	assert.Equal(t, strings.ToUpper(code), code)
}

func TestUnitCode_ConsecutivosDistintos(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range []string{"REC-00001", "REC-00002", "REC-00003", "REC-99999"} {
		code := ledger.UnitCode(c)
		assert.False(t, seen[code], "colisión de unitCode para %s", c)
		seen[code] = true
	}
}
