// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dashboard_backend/internal/feature/symbollist/domain/entity"
	"dashboard_backend/internal/feature/symbollist/usecase"
)

// symbolGorm はSymbolRepositoryインターフェースのgorm実装です（PostgreSQL / SQLite）。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// SearchActive はコードの前方一致または名称の部分一致でアクティブな銘柄を検索します。
// 大文字小文字は区別しません。
func (r *symbolGorm) SearchActive(ctx context.Context, query string, limit int) ([]entity.Symbol, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("code ASC")
	if query != "" {
		esc := escapeLike(strings.ToLower(query))
		q = q.Where(`(LOWER(code) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\')`, esc+"%", "%"+esc+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var symbols []entity.Symbol
	if err := q.Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// UpsertBatch はコードをキーに銘柄を挿入または更新します。
func (r *symbolGorm) UpsertBatch(ctx context.Context, symbols []entity.Symbol) error {
	if len(symbols) == 0 {
		return nil
	}

	var inactive []string
	for _, s := range symbols {
		if !s.IsActive {
			inactive = append(inactive, s.Code)
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "market", "is_active", "sort_key", "updated_at"}),
		}).Create(&symbols).Error; err != nil {
			return err
		}
		// default:true のためfalseは挿入時に無視される。明示的に更新する
		if len(inactive) == 0 {
			return nil
		}
		return tx.Model(&entity.Symbol{}).
			Where("code IN ?", inactive).
			Update("is_active", false).Error
	})
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
