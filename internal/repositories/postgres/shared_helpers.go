package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/gym-service/internal/repositories"
)

// handleDBError is a package-level helper for handling database errors.
// It expects a gorm.DB opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.
func handleDBError(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrDuplicate)
	default:
		return fmt.Errorf("%s failed: %w", operation, err)
	}
}

// requireAffected maps a zero-row write to ErrNotFound
func requireAffected(result *gorm.DB, operation string) error {
	if result.Error != nil {
		return handleDBError(result.Error, operation)
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, operation)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches the text literally
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

// recipientScope matches user_id or user_email; empty values never match
func recipientScope(db *gorm.DB, userID, email string) *gorm.DB {
	switch {
	case userID != "" && email != "":
		return db.Where("user_id = ?", userID).Or("user_email = ?", email)
	case userID != "":
		return db.Where("user_id = ?", userID)
	case email != "":
		return db.Where("user_email = ?", email)
	default:
		return db.Where("1 = 0")
	}
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
