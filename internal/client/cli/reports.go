package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fieldworks/sitereport/internal/client/datalayer"
	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/common"
)

func (a *App) listDrafts(ctx context.Context) {
	drafts, err := a.data.GetAllDrafts(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(drafts) == 0 {
		fmt.Println("No drafts.")
		return
	}
	for _, d := range drafts {
		fmt.Printf("%s  %s  (updated %s)\n", d.ProjectID, d.Date, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) showDraft(ctx context.Context, date string) {
	projectID := a.data.GetActiveProjectID()
	if projectID == "" {
		fmt.Println("No active project. Use 'use <projectId>' first.")
		return
	}
	d, err := a.data.GetCurrentDraft(ctx, projectID, date)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if d == nil {
		fmt.Println("No draft for", projectID, date)
		return
	}
	for k, v := range d.Content {
		fmt.Printf("%s: %v\n", k, v)
	}
}

func (a *App) editDraft(ctx context.Context, date string) {
	projectID := a.data.GetActiveProjectID()
	if projectID == "" {
		fmt.Println("No active project. Use 'use <projectId>' first.")
		return
	}
	text, err := GetMultiline(a.reader, "Work performed", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	content := map[string]any{"workPerformed": text}
	if d, _ := a.data.GetCurrentDraft(ctx, projectID, date); d != nil {
		for k, v := range d.Content {
			if _, ok := content[k]; !ok {
				content[k] = v
			}
		}
	}
	if err := a.data.SaveDraft(ctx, projectID, date, content); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Draft saved.")
}

func (a *App) listArchives(ctx context.Context) {
	reports, err := a.data.LoadArchivedReports(ctx, a.config.ArchiveLimit)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(reports) == 0 {
		fmt.Println("No archived reports.")
		return
	}
	for _, r := range reports {
		fmt.Printf("%s  %s  %s\n", r.ID, r.Date, r.ProjectName)
	}
}

func (a *App) deleteArchivedReport(ctx context.Context, reportID string) {
	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete report %s? This cannot be undone (y/N)", reportID), os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Cancelled.")
		return
	}
	if err := a.data.DeleteArchivedReport(ctx, reportID); err != nil {
		if errors.Is(err, common.ErrOffline) {
			fmt.Println("Cannot delete reports while offline.")
			return
		}
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Report deleted.")
}

func (a *App) submitReport(ctx context.Context, reportID, date string) {
	projectID := a.data.GetActiveProjectID()
	if projectID == "" {
		fmt.Println("No active project. Use 'use <projectId>' first.")
		return
	}
	d, err := a.data.GetCurrentDraft(ctx, projectID, date)
	if err != nil || d == nil {
		fmt.Println("No draft to submit for", projectID, date)
		return
	}

	sections := make([]models.ReportSection, 0, len(d.Content))
	order := 0
	for key, v := range d.Content {
		sections = append(sections, models.ReportSection{
			Key:     key,
			Title:   key,
			Content: fmt.Sprintf("%v", v),
			Order:   order,
		})
		order++
	}

	err = a.data.SubmitFinalReport(ctx, datalayer.Submission{ReportID: reportID, Sections: sections})
	if err != nil {
		if errors.Is(err, common.ErrOffline) {
			fmt.Println("Cannot submit while offline.")
			return
		}
		fmt.Println("Error:", err)
		return
	}
	if err := a.data.ClearAfterSubmit(ctx, projectID, date, reportID); err != nil {
		fmt.Println("Submitted, but cleanup left residue:", err)
		return
	}
	fmt.Println("Report submitted.")
}
