package utils

import (
	"math/rand"
	"time"

	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
)

const txnRefLength = 12
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionRef produces a unique reference for a simulated payment
// transaction, retrying until it finds one no payment row already uses.
func GenerateTransactionRef(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, txnRefLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		ref := "TXN-" + string(b)

		var payment models.Payment
		err := tx.Where("transaction_id = ?", ref).First(&payment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ref, nil
			}
			return "", err
		}
	}
}
