package ledger

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
)

// Secuencias de numeración del ledger. Cada nombre tiene su propio contador
// monotónico en la tabla consecutives.
const (
	SequenceReceptions  = "recepciones"
	SequenceCorrections = "correcciones"
)

// FormatReception formatea un consecutivo de recepción: REC-00001.
func FormatReception(n int64) string {
	return fmt.Sprintf("REC-%05d", n)
}

// FormatCorrection formatea un consecutivo de corrección: COR-00001.
func FormatCorrection(n int64) string {
	return fmt.Sprintf("COR-%05d", n)
}

// UnitCode deriva el token opaco escaneable de una unidad a partir de su
// consecutivo de recepción. Determinista: el mismo consecutivo produce
// siempre el mismo código, y consecutivos distintos producen códigos
// distintos (SHA-256 truncado en base32, prefijo U).
func UnitCode(receptionConsecutive string) string {
	sum := sha256.Sum256([]byte(receptionConsecutive))
	enc := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(sum[:])
	return "U" + enc[:10]
}
