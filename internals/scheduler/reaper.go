// file: internals/scheduler/reaper.go
package scheduler

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	ossSvc "github.com/geodevmt/app-projeto-vida/internals/helpers/oss"
)

type ReaperConfig struct {
	CronSchedule string
	// GraceHours: idade mínima do objeto antes de ser considerado órfão.
	// Evita apagar upload cujo insert ainda está em andamento.
	GraceHours int
	DryRun     bool
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "":
		return def
	default:
		return false
	}
}

// ── ENTRYPOINT: chamado do main.go
func StartReaperCron(db *gorm.DB) {
	cfg := ReaperConfig{
		CronSchedule: getEnvOrDefault("REAPER_CRON_SCHEDULE", "30 3 * * *"),
		GraceHours:   getEnvInt("REAPER_GRACE_HOURS", 24),
		DryRun:       getEnvBool("REAPER_DRY_RUN", false),
	}

	// storage opcional: sem ENV de OSS roda só a limpeza de banco
	var uploads *ossSvc.OSSService
	if svc, err := ossSvc.NewOSSServiceFromEnv("uploads"); err == nil {
		uploads = svc
	} else {
		log.Printf("[REAPER] storage indisponível, só limpeza de banco: %v", err)
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.CronSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Minute)
		defer cancel()

		if uploads != nil {
			if err := reapOrphanUploads(ctx, db, uploads, cfg); err != nil {
				log.Printf("[REAPER] uploads órfãos: %v", err)
			}
		}
		if err := reapExpiredRows(ctx, db); err != nil {
			log.Printf("[REAPER] linhas expiradas: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[REAPER] add cron falhou: %v", err)
	}
	log.Printf("[REAPER] started schedule=%q grace=%dh dryRun=%v",
		cfg.CronSchedule, cfg.GraceHours, cfg.DryRun)
	c.Start()
}

// reapOrphanUploads apaga objetos antigos do namespace uploads/ que não têm
// linha correspondente em documents (upload cujo insert falhou e a
// compensação também não rodou).
func reapOrphanUploads(ctx context.Context, db *gorm.DB, uploads *ossSvc.OSSService, cfg ReaperConfig) error {
	cutoff := time.Now().Add(-time.Duration(cfg.GraceHours) * time.Hour)

	keys, err := uploads.ListObjectsOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		log.Println("[REAPER] nenhum objeto antigo em uploads/")
		return nil
	}

	deleted := 0
	for _, key := range keys {
		var n int64
		if err := db.WithContext(ctx).
			Table("documents").
			Where("file_path = ?", key).
			Count(&n).Error; err != nil {
			log.Printf("[REAPER] count %q falhou: %v", key, err)
			continue
		}
		if n > 0 {
			continue
		}
		if cfg.DryRun {
			log.Printf("[REAPER] DRY-RUN apagaria objeto órfão %q", key)
			continue
		}
		if err := uploads.DeleteObject(ctx, key); err != nil {
			log.Printf("[REAPER] delete %q falhou: %v", key, err)
			continue
		}
		deleted++
	}
	log.Printf("[REAPER] uploads: %d órfãos apagados de %d objetos antigos", deleted, len(keys))
	return nil
}

// reapExpiredRows limpa tokens e convites que já não servem para nada.
func reapExpiredRows(ctx context.Context, db *gorm.DB) error {
	now := time.Now().UTC()

	type target struct {
		Table string
		Where string
	}
	targets := []target{
		{Table: "refresh_tokens", Where: "expires_at < ? OR revoked_at IS NOT NULL"},
		{Table: "password_resets", Where: "expires_at < ? OR used_at IS NOT NULL"},
		{Table: "invites", Where: "expires_at < ? AND accepted_at IS NULL"},
	}

	for _, t := range targets {
		res := db.WithContext(ctx).Exec(`DELETE FROM `+t.Table+` WHERE `+t.Where, now)
		if res.Error != nil {
			log.Printf("[REAPER] %s: delete falhou: %v", t.Table, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			log.Printf("[REAPER] %s: %d linhas removidas", t.Table, res.RowsAffected)
		}
	}
	return nil
}
