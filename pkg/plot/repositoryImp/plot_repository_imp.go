package repositoryImp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sawah/entities"
	"sawah/pkg/plot/repository"
)

type plotRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlotRepository { return &plotRepo{db} }

func (r *plotRepo) ReplaceSource(group, file string, plots []entities.Plot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("layer_group = ? AND source_file = ?", group, file).Delete(&entities.Plot{}).Error; err != nil {
			return fmt.Errorf("delete %s/%s: %w", group, file, err)
		}
		if len(plots) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(plots, 100).Error; err != nil {
			return fmt.Errorf("insert %s/%s: %w", group, file, err)
		}
		return nil
	})
}

func (r *plotRepo) List(group string) ([]entities.Plot, error) {
	var out []entities.Plot
	q := r.db.Model(&entities.Plot{})
	if group != "" {
		q = q.Where("layer_group = ?", group)
	}
	if err := q.Order("layer_group ASC, source_file ASC, ord ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plotRepo) FindByID(id string) (*entities.Plot, error) {
	var p entities.Plot
	if err := r.db.Where("plot_id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *plotRepo) SearchByName(q string) ([]entities.Plot, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []entities.Plot
	if q == "" {
		return out, nil
	}
	if err := r.db.Where("instr(lower(name), ?) > 0", q).
		Order("layer_group ASC, source_file ASC, ord ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *plotRepo) SaveFills(plots []entities.Plot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range plots {
			upd := map[string]any{"current_fill": p.CurrentFill, "original_fill": p.OriginalFill}
			if err := tx.Model(&entities.Plot{}).Where("plot_id = ?", p.PlotID).Updates(upd).Error; err != nil {
				return fmt.Errorf("save fill %s: %w", p.PlotID, err)
			}
		}
		return nil
	})
}

func (r *plotRepo) LoadTuai() (bool, error) {
	var st entities.Setting
	if err := r.db.Where(&entities.Setting{Key: entities.SettingTuaiActive}).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	active, err := strconv.ParseBool(st.Value)
	if err != nil {
		return false, fmt.Errorf("setting %s=%q: %w", st.Key, st.Value, err)
	}
	return active, nil
}

func (r *plotRepo) SaveTuai(active bool) error {
	st := entities.Setting{Key: entities.SettingTuaiActive, Value: strconv.FormatBool(active)}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&st).Error
}
