package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fieldworks/sitereport/internal/client/models"
	"github.com/fieldworks/sitereport/internal/common"
)

func (a *App) showSettings(ctx context.Context) {
	p, err := a.data.LoadUserSettings(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if p == nil {
		fmt.Println("No profile yet. Use 'setprofile' to create one.")
		return
	}
	fmt.Println("Name:   ", p.FullName)
	fmt.Println("Title:  ", p.Title)
	fmt.Println("Company:", p.Company)
	fmt.Println("Email:  ", p.Email)
	fmt.Println("Phone:  ", p.Phone)
}

func (a *App) editProfile(ctx context.Context) {
	current, err := a.data.LoadUserSettings(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	p := models.UserProfile{}
	if current != nil {
		p = *current
	}

	if v, err := GetSimpleText(a.reader, "Full name", os.Stdout); err == nil && v != "" {
		p.FullName = v
	}
	if v, err := GetSimpleText(a.reader, "Title", os.Stdout); err == nil && v != "" {
		p.Title = v
	}
	if v, err := GetSimpleText(a.reader, "Company", os.Stdout); err == nil && v != "" {
		p.Company = v
	}
	if v, err := GetSimpleText(a.reader, "Email", os.Stdout); err == nil && v != "" {
		p.Email = v
	}
	if v, err := GetSimpleText(a.reader, "Phone", os.Stdout); err == nil && v != "" {
		p.Phone = v
	}

	if _, err := a.data.SaveUserSettings(ctx, p); err != nil {
		if errors.Is(err, common.ErrSavedLocalOnly) {
			fmt.Println("Saved locally; will sync when back online.")
			return
		}
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Profile saved.")
}
