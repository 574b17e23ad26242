package report

import "github.com/pterm/pterm"

var (
	errorColorFG = pterm.FgRed
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnColorFG  = pterm.FgYellow
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoColorFG  = pterm.FgLightGreen
	infoStyleBG  = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

func displayError(msg string) {
	errorStyleBG.Print("Error")
	errorColorFG.Println(" " + msg)
}

func displayFatal(msg string) {
	errorStyleBG.Print("Fatal")
	errorColorFG.Println(" " + msg)
}

func displayWarning(msg string) {
	warnStyleBG.Print("Warning")
	warnColorFG.Println(" " + msg)
}

func displayInfo(msg string) {
	infoStyleBG.Print("Info")
	infoColorFG.Println(" " + msg)
}
