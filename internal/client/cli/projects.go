package cli

import (
	"context"
	"fmt"
)

func (a *App) listProjects(ctx context.Context) {
	projects, err := a.data.LoadProjects(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(projects) == 0 {
		fmt.Println("No projects available.")
		return
	}
	for _, p := range projects {
		fmt.Printf("%s  %s (%s)\n", p.ID, p.Name, p.Status)
	}
}

func (a *App) useProject(id string) {
	if err := a.data.SetActiveProjectID(id); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Active project set to", id)
}

func (a *App) showActiveProject(ctx context.Context) {
	p, err := a.data.LoadActiveProject(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if p == nil {
		fmt.Println("No active project. Use 'use <projectId>' first.")
		return
	}
	fmt.Printf("%s  %s\n", p.ID, p.Name)
	if p.Location != "" {
		fmt.Println("  location:", p.Location)
	}
	if p.PrimeContractor != "" {
		fmt.Println("  prime:", p.PrimeContractor)
	}
	for _, c := range p.Contractors {
		fmt.Printf("  contractor: %s (%s, %s)\n", c.Name, c.Company, c.Type)
	}
}
