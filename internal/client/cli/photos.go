package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fieldworks/sitereport/internal/client/models"
)

func (a *App) listPhotos(ctx context.Context, reportID string) {
	photos, err := a.data.GetPhotos(ctx, reportID)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(photos) == 0 {
		fmt.Println("No photos for report", reportID)
		return
	}
	for _, p := range photos {
		fmt.Printf("%s  %s  %d bytes  retries=%d  %s\n",
			p.ID, p.SyncStatus, len(p.Blob), p.RetryCount, p.Caption)
	}
}

func (a *App) addPhoto(ctx context.Context, reportID, path string) {
	blob, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	caption, _ := GetSimpleText(a.reader, "Caption (optional)", os.Stdout)
	p, err := a.data.SavePhoto(ctx, models.Photo{
		ReportID:  reportID,
		Blob:      blob,
		Caption:   caption,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Photo %s queued (%s)\n", p.ID, filepath.Base(path))
}

func (a *App) deletePhoto(ctx context.Context, id string) {
	if err := a.data.DeletePhoto(ctx, id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Photo deleted.")
}

func (a *App) syncPhotos(ctx context.Context) {
	if !a.data.IsOnline() {
		fmt.Println("Offline; photos will sync automatically when back online.")
		return
	}
	n, err := a.sweeper.SyncNow(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Synced %d photo(s).\n", n)
}
