package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	mode := "offline"
	if a.data.IsOnline() {
		mode = "online"
	}
	if id := a.data.GetActiveProjectID(); id != "" {
		return fmt.Sprintf("(%s %s)", id, mode)
	}
	return fmt.Sprintf("(%s)", mode)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to SiteReport CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("sr %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: projects, use <id>, project, settings, setprofile, drafts, draft <date>, savedraft <date>, photos <reportId>, addphoto <reportId> <file>, delphoto <id>, sync, archives, delreport <reportId>, submit <reportId> <date>, online, exit")
		case "projects":
			a.listProjects(ctx)
		case "use":
			if len(args) == 0 {
				fmt.Println("Usage: use <projectId>")
				continue
			}
			a.useProject(args[0])
		case "project":
			a.showActiveProject(ctx)
		case "settings":
			a.showSettings(ctx)
		case "setprofile":
			a.editProfile(ctx)
		case "drafts":
			a.listDrafts(ctx)
		case "draft":
			if len(args) == 0 {
				fmt.Println("Usage: draft <date>")
				continue
			}
			a.showDraft(ctx, args[0])
		case "savedraft":
			if len(args) == 0 {
				fmt.Println("Usage: savedraft <date>")
				continue
			}
			a.editDraft(ctx, args[0])
		case "photos":
			if len(args) == 0 {
				fmt.Println("Usage: photos <reportId>")
				continue
			}
			a.listPhotos(ctx, args[0])
		case "addphoto":
			if len(args) < 2 {
				fmt.Println("Usage: addphoto <reportId> <file>")
				continue
			}
			a.addPhoto(ctx, args[0], args[1])
		case "delphoto":
			if len(args) == 0 {
				fmt.Println("Usage: delphoto <photoId>")
				continue
			}
			a.deletePhoto(ctx, args[0])
		case "sync":
			a.syncPhotos(ctx)
		case "archives":
			a.listArchives(ctx)
		case "delreport":
			if len(args) == 0 {
				fmt.Println("Usage: delreport <reportId>")
				continue
			}
			a.deleteArchivedReport(ctx, args[0])
		case "submit":
			if len(args) < 2 {
				fmt.Println("Usage: submit <reportId> <date>")
				continue
			}
			a.submitReport(ctx, args[0], args[1])
		case "online":
			fmt.Println("online:", a.watcher.Check(ctx))
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
