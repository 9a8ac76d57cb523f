package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nthwave/ink_studio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotStore owns every TimeSlot mutation. No other component writes slot rows
// directly; the appointment engine goes through the transactional helpers so
// slot and appointment changes commit together.
type SlotStore struct {
	db *gorm.DB
}

func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{db: db}
}

// reserveSlot is a single conditional update: AVAILABLE -> PENDING_APPOINTMENT.
// Concurrent callers racing on the same slot resolve to exactly one winner;
// everyone else sees ErrSlotUnavailable.
func reserveSlot(tx *gorm.DB, slotID uuid.UUID) error {
	res := tx.Model(&models.TimeSlot{}).
		Where("id = ? AND status = ?", slotID, models.SlotAvailable).
		Update("status", models.SlotPendingAppointment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var slot models.TimeSlot
		if err := tx.First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
			}
			return err
		}
		return ErrSlotUnavailable
	}
	return nil
}

// confirmSlot moves PENDING_APPOINTMENT -> BOOKED. Already-BOOKED slots are
// left untouched.
func confirmSlot(tx *gorm.DB, slotID uuid.UUID) error {
	var slot models.TimeSlot
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
		}
		return err
	}
	switch slot.Status {
	case models.SlotBooked:
		return nil
	case models.SlotPendingAppointment:
		return tx.Model(&slot).Update("status", models.SlotBooked).Error
	default:
		return invalidTransition("slot", string(slot.Status), string(models.SlotBooked))
	}
}

// releaseSlot moves BOOKED or PENDING_APPOINTMENT back to AVAILABLE. It is
// idempotent: an already-AVAILABLE slot is a no-op, and BLOCKED slots stay
// BLOCKED.
func releaseSlot(tx *gorm.DB, slotID uuid.UUID) error {
	return tx.Model(&models.TimeSlot{}).
		Where("id = ? AND status IN ?", slotID, []models.SlotStatus{models.SlotBooked, models.SlotPendingAppointment}).
		Update("status", models.SlotAvailable).Error
}

func (s *SlotStore) Reserve(slotID uuid.UUID) error {
	return reserveSlot(s.db, slotID)
}

func (s *SlotStore) Confirm(slotID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return confirmSlot(tx, slotID)
	})
}

func (s *SlotStore) Release(slotID uuid.UUID) error {
	return releaseSlot(s.db, slotID)
}

// Block takes a slot out of circulation. Slots referenced by a live
// appointment (BOOKED or PENDING_APPOINTMENT) cannot be blocked; the
// appointment has to be cancelled first.
func (s *SlotStore) Block(slotID, adminID uuid.UUID, reason string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var slot models.TimeSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
			}
			return err
		}
		if slot.Status == models.SlotBooked || slot.Status == models.SlotPendingAppointment {
			return invalidTransition("slot", string(slot.Status), string(models.SlotBlocked))
		}
		if slot.Status == models.SlotBlocked {
			return nil
		}
		return tx.Model(&slot).Updates(map[string]interface{}{
			"status":              models.SlotBlocked,
			"block_reason":        reason,
			"blocked_by_admin_id": adminID,
		}).Error
	})
}

func (s *SlotStore) Unblock(slotID, adminID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var slot models.TimeSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: slot %s", ErrNotFound, slotID)
			}
			return err
		}
		if slot.Status == models.SlotAvailable {
			return nil
		}
		if slot.Status != models.SlotBlocked {
			return invalidTransition("slot", string(slot.Status), string(models.SlotAvailable))
		}
		return tx.Model(&slot).Updates(map[string]interface{}{
			"status":              models.SlotAvailable,
			"block_reason":        nil,
			"blocked_by_admin_id": nil,
		}).Error
	})
}

// GenerateForRange materializes bookable slots for [from, to) from the
// artist's weekly schedule. Regeneration is idempotent: previously generated
// slots still AVAILABLE in the range are replaced, while slots that are
// PENDING_APPOINTMENT, BOOKED or BLOCKED survive and the generator skips any
// candidate overlapping them. Returns the number of slots created.
func (s *SlotStore) GenerateForRange(artistID uuid.UUID, from, to time.Time) (int, error) {
	if !to.After(from) {
		return 0, validationErr("range end must be after range start")
	}

	var created int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var schedules []models.ArtistSchedule
		if err := tx.Where("artist_id = ? AND is_active = ?", artistID, true).Find(&schedules).Error; err != nil {
			return err
		}
		byDay := make(map[int][]models.ArtistSchedule)
		for _, sch := range schedules {
			byDay[sch.DayOfWeek] = append(byDay[sch.DayOfWeek], sch)
		}

		if err := tx.Where("artist_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
			artistID, models.SlotAvailable, from, to).
			Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}

		var surviving []models.TimeSlot
		if err := tx.Where("artist_id = ? AND start_time < ? AND end_time > ?", artistID, to, from).
			Find(&surviving).Error; err != nil {
			return err
		}

		var slots []models.TimeSlot
		for day := startOfDay(from); day.Before(to); day = day.AddDate(0, 0, 1) {
			for _, sch := range byDay[int(day.Weekday())] {
				dayStart, err := clockOnDay(day, sch.StartTime)
				if err != nil {
					return err
				}
				dayEnd, err := clockOnDay(day, sch.EndTime)
				if err != nil {
					return err
				}
				step := time.Duration(sch.SlotDuration) * time.Minute
				if step <= 0 || !dayEnd.After(dayStart) {
					continue
				}
				for t := dayStart; !t.Add(step).After(dayEnd); t = t.Add(step) {
					if t.Before(from) || t.Add(step).After(to) {
						continue
					}
					if overlapsAny(t, t.Add(step), surviving) || overlapsAny(t, t.Add(step), slots) {
						continue
					}
					slots = append(slots, models.TimeSlot{
						ArtistID:  artistID,
						StartTime: t,
						EndTime:   t.Add(step),
						Status:    models.SlotAvailable,
					})
				}
			}
		}

		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}
		created = len(slots)
		return nil
	})
	return created, err
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// clockOnDay resolves a schedule clock string like "09:00" onto a concrete day.
func clockOnDay(day time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, validationErr("malformed schedule time %q", hhmm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// Half-open intervals: [start,end) overlaps [s,e) iff start < e && s < end.
func overlapsAny(start, end time.Time, slots []models.TimeSlot) bool {
	for _, s := range slots {
		if start.Before(s.EndTime) && s.StartTime.Before(end) {
			return true
		}
	}
	return false
}
