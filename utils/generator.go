package utils

import (
	"math/rand"
	"time"

	"github.com/emrekoc/pilates_studio/models"
	"gorm.io/gorm"
)

const memberNumberLength = 6
const digitBytes = "0123456789"

// GenerateUniqueMemberNumber produces a member number that is not yet taken.
func GenerateUniqueMemberNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, memberNumberLength)
		for i := range b {
			b[i] = digitBytes[seededRand.Intn(len(digitBytes))]
		}
		number := "PS" + string(b)

		var member models.Member
		err := tx.Where("member_number = ?", number).First(&member).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
