package services

import (
	"errors"

	"github.com/Rjvaldo21/correspondence/models"

	"gorm.io/gorm"
)

type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// CanUserRegisterIncoming - hanya sekretariat (dan admin) yang mencatat
// surat masuk.
func (ps *PermissionService) CanUserRegisterIncoming(user *models.User) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	return user.IsSekretariat() || user.IsAdmin(), nil
}

// CanUserDispose - direktur mendisposisi surat masuk yang masih berstatus
// rejistu.
func (ps *PermissionService) CanUserDispose(user *models.User, letter *models.IncomingLetter) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if letter == nil {
		return false, ErrNotFound
	}
	if !user.IsDirektur() && !user.IsAdmin() {
		return false, nil
	}
	return letter.Status == models.IncomingRegistered || letter.Status == models.IncomingDisposed, nil
}

// CanUserArchiveIncoming - sekretariat mengarsip surat yang sudah selesai;
// admin boleh kapan saja (force).
func (ps *PermissionService) CanUserArchiveIncoming(user *models.User, letter *models.IncomingLetter) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if letter == nil {
		return false, ErrNotFound
	}
	if user.IsAdmin() {
		return true, nil
	}
	if !user.IsSekretariat() {
		return false, nil
	}
	return letter.Status == models.IncomingDone, nil
}

// CanUserViewIncoming menerapkan gerbang RHS: surat bertag RHS hanya
// terlihat oleh anggota grup RHS_ACCESS (atau admin). Groups dan
// ClassificationTags harus sudah di-preload oleh pemanggil.
func (ps *PermissionService) CanUserViewIncoming(user *models.User, letter *models.IncomingLetter) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if letter == nil {
		return false, ErrNotFound
	}

	if letter.HasTag("RHS") && !user.IsAdmin() && !user.HasGroup(models.GroupRHSAccess) {
		return false, nil
	}

	return true, nil
}

// CanUserActOnAssignment - assignee sendiri, atau role elevated yang
// bertindak atas namanya.
func (ps *PermissionService) CanUserActOnAssignment(user *models.User, a *models.DispositionAssignment) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if a == nil {
		return false, ErrNotFound
	}
	return a.AssigneeID == user.ID || user.IsElevated(), nil
}

// CanUserTransitionOutgoing - konseptor menggerakkan suratnya sendiri;
// direktur dan admin menggerakkan semua. force hanya untuk admin.
func (ps *PermissionService) CanUserTransitionOutgoing(user *models.User, letter *models.OutgoingLetter, force bool) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if letter == nil {
		return false, ErrNotFound
	}
	if force {
		return user.IsAdmin(), nil
	}
	if user.IsAdmin() || user.IsDirektur() {
		return true, nil
	}
	return letter.CreatedByID != nil && *letter.CreatedByID == user.ID, nil
}

// CanUserApproveReview - hanya reviewer yang ditunjuk pada step itu.
func (ps *PermissionService) CanUserApproveReview(user *models.User, step *models.ReviewStep) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	if step == nil {
		return false, ErrNotFound
	}
	return step.ReviewerID == user.ID || user.IsAdmin(), nil
}

// CanUserRecordDestruction - pemusnahan arsip hanya oleh admin.
func (ps *PermissionService) CanUserRecordDestruction(user *models.User) (bool, error) {
	if user == nil {
		return false, ErrUnauthorized
	}
	return user.IsAdmin(), nil
}

// GetIncomingByID - helper fetch surat masuk dengan relasi yang dipakai
// pengecekan izin dan lifecycle.
func (ps *PermissionService) GetIncomingByID(id uint) (*models.IncomingLetter, error) {
	var letter models.IncomingLetter
	err := ps.db.
		Preload("ClassificationTags").
		Preload("CreatedBy").
		Preload("CurrentHandler").
		First(&letter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &letter, nil
}

// GetOutgoingByID - helper fetch surat keluar beserta rantai review-nya.
func (ps *PermissionService) GetOutgoingByID(id uint) (*models.OutgoingLetter, error) {
	var letter models.OutgoingLetter
	err := ps.db.
		Preload("Reviews").
		Preload("CreatedBy").
		First(&letter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &letter, nil
}
