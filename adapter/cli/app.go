package cli

import (
	"github.com/google/uuid"

	habitCommands "github.com/tendhq/tend/internal/habits/application/commands"
	habitQueries "github.com/tendhq/tend/internal/habits/application/queries"
	insightQueries "github.com/tendhq/tend/internal/insights/application/queries"
	journalCommands "github.com/tendhq/tend/internal/journal/application/commands"
)

// App holds the CLI application dependencies.
type App struct {
	// Habit command handlers
	CreateHabitHandler    *habitCommands.CreateHabitHandler
	SetStatusHandler      *habitCommands.SetStatusHandler
	UpdateReminderHandler *habitCommands.UpdateReminderHandler
	ArchiveHabitHandler   *habitCommands.ArchiveHabitHandler

	// Habit query handlers
	ListHabitsHandler *habitQueries.ListHabitsHandler
	GetHabitHandler   *habitQueries.GetHabitHandler

	// Journal command handlers
	AddGoalHandler         *journalCommands.AddGoalHandler
	CompleteGoalHandler    *journalCommands.CompleteGoalHandler
	RecordDeedHandler      *journalCommands.RecordDeedHandler
	WriteReflectionHandler *journalCommands.WriteReflectionHandler

	// Insight query handlers
	GetHabitStatsHandler    *insightQueries.GetHabitStatsHandler
	GetPeriodSummaryHandler *insightQueries.GetPeriodSummaryHandler

	// Current owner (configured per environment)
	CurrentOwnerID uuid.UUID
}

// SetCurrentOwnerID updates the current owner ID.
func (a *App) SetCurrentOwnerID(id uuid.UUID) {
	a.CurrentOwnerID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
