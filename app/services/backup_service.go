// Package services holds operations that span both collections.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/storage"
)

const (
	backupDir  = "backups"
	nameLayout = "20060102T150405.000Z"
)

type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type OrderLister interface {
	List(ctx context.Context) ([]models.Order, error)
}

// Backup is the document written by Export.
type Backup struct {
	ExportedAt time.Time      `json:"exported_at"`
	Users      []models.User  `json:"users"`
	Orders     []models.Order `json:"orders"`
}

// BackupService snapshots both collections as one JSON file on a disk.
type BackupService struct {
	users  UserLister
	orders OrderLister
	disk   storage.Disk
	now    func() time.Time
}

func NewBackupService(users UserLister, orders OrderLister, disk storage.Disk) *BackupService {
	return &BackupService{users: users, orders: orders, disk: disk, now: time.Now}
}

// Export writes backups/paladar-<timestamp>.json and returns its path.
// Nothing is written if either collection cannot be read.
func (s *BackupService) Export(ctx context.Context) (string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", fmt.Errorf("backup: read users: %w", err)
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return "", fmt.Errorf("backup: read orders: %w", err)
	}

	at := s.now().UTC()
	body, err := json.MarshalIndent(Backup{ExportedAt: at, Users: users, Orders: orders}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("backup: encode: %w", err)
	}

	path, err := s.freePath(ctx, at)
	if err != nil {
		return "", err
	}
	if err := s.disk.Put(ctx, path, body); err != nil {
		return "", fmt.Errorf("backup: write %s: %w", path, err)
	}
	logger.WithCtx(ctx).Info("backup: exported", "path", path, "users", len(users), "orders", len(orders))
	return path, nil
}

// freePath names the backup after at, in milliseconds. A name already taken
// moves on to the next millisecond so names keep sorting oldest first.
func (s *BackupService) freePath(ctx context.Context, at time.Time) (string, error) {
	for {
		path := fmt.Sprintf("%s/paladar-%s.json", backupDir, at.Format(nameLayout))
		taken, err := s.disk.Exists(ctx, path)
		if err != nil {
			return "", fmt.Errorf("backup: check %s: %w", path, err)
		}
		if !taken {
			return path, nil
		}
		at = at.Add(time.Millisecond)
	}
}

// List returns the backups on the disk, oldest first.
func (s *BackupService) List(ctx context.Context) ([]string, error) {
	files, err := s.disk.Files(ctx, backupDir)
	if err != nil {
		return nil, fmt.Errorf("backup: list: %w", err)
	}
	return files, nil
}

// Read loads a backup written by Export.
func (s *BackupService) Read(ctx context.Context, path string) (Backup, error) {
	var b Backup
	raw, err := s.disk.Get(ctx, path)
	if err != nil {
		return b, fmt.Errorf("backup: read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return b, fmt.Errorf("backup: decode %s: %w", path, err)
	}
	return b, nil
}
