package app

import (
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
)

// Menu builds the application menu bar
func (a *App) Menu() *menu.Menu {
	appMenu := menu.NewMenu()

	file := appMenu.AddSubmenu("File")
	file.AddText("Open PDF...", keys.CmdOrCtrl("o"), func(_ *menu.CallbackData) {
		if _, err := a.ChooseDocument(); err != nil {
			a.dialogs.ShowError("Error", err.Error())
		}
	})

	tools := appMenu.AddSubmenu("Tools")
	tools.AddText("Save Profile", keys.CmdOrCtrl("s"), func(_ *menu.CallbackData) {
		a.RequestSaveProfile()
	})
	tools.AddText("Update Selected Profile", keys.CmdOrCtrl("u"), func(_ *menu.CallbackData) {
		a.updateSelectedFromMenu()
	})
	tools.AddSeparator()
	tools.AddText("Exit", keys.CmdOrCtrl("q"), func(_ *menu.CallbackData) {
		a.Quit()
	})

	return appMenu
}
