package reports

import (
	"seguimiento-backend/internal/database"
	"seguimiento-backend/internal/models"
)

// Capa de expansión: resuelve las referencias débiles de los reportes
// para presentación. Cliente y ubicación se proyectan a {id, name};
// tareas, mejoras y métricas se embeben completas. Una referencia
// colgando (la entidad fue borrada) se omite, nunca es un error.

// WeeklyTaskEntry: snapshot expandido. Si la tarea referenciada ya no
// existe, Task queda nil y se conserva el estado fotografiado.
type WeeklyTaskEntry struct {
	TaskID uint              `json:"taskId"`
	Status models.TaskStatus `json:"status"`
	Task   *models.Task      `json:"task,omitempty"`
}

type WeeklyReportResponse struct {
	models.WeeklyReport
	Client       *models.NameRef      `json:"client,omitempty"`
	Location     *models.NameRef      `json:"location,omitempty"`
	Tasks        []WeeklyTaskEntry    `json:"tasks"`
	Improvements []models.Improvement `json:"improvements"`
	Metrics      []models.Metric      `json:"metrics"`
}

type MonthlyReportResponse struct {
	models.MonthlyReport
	Client        *models.NameRef        `json:"client,omitempty"`
	Location      *models.NameRef        `json:"location,omitempty"`
	WeeklyReports []WeeklyReportResponse `json:"weeklyReports"`
	Metrics       []models.Metric        `json:"metrics"`
}

func clientRef(id uint) *models.NameRef {
	var client models.Client
	if err := database.DB.Select("id", "name").First(&client, "id = ?", id).Error; err != nil {
		return nil
	}
	return &models.NameRef{ID: client.ID, Name: client.Name}
}

func locationRef(id uint) *models.NameRef {
	var location models.Location
	if err := database.DB.Select("id", "name").First(&location, "id = ?", id).Error; err != nil {
		return nil
	}
	return &models.NameRef{ID: location.ID, Name: location.Name}
}

func loadTasksByID(ids []uint) map[uint]models.Task {
	byID := make(map[uint]models.Task, len(ids))
	if len(ids) == 0 {
		return byID
	}
	var tasks []models.Task
	if err := database.DB.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return byID
	}
	for _, t := range tasks {
		byID[t.ID] = t
	}
	return byID
}

func loadImprovements(ids models.IDList) []models.Improvement {
	out := make([]models.Improvement, 0, len(ids))
	if len(ids) == 0 {
		return out
	}
	var improvements []models.Improvement
	if err := database.DB.Where("id IN ?", []uint(ids)).Find(&improvements).Error; err != nil {
		return out
	}
	byID := make(map[uint]models.Improvement, len(improvements))
	for _, i := range improvements {
		byID[i.ID] = i
	}
	for _, id := range ids {
		if i, ok := byID[id]; ok {
			out = append(out, i)
		}
	}
	return out
}

func loadMetrics(ids models.IDList) []models.Metric {
	out := make([]models.Metric, 0, len(ids))
	if len(ids) == 0 {
		return out
	}
	var results []models.Metric
	if err := database.DB.Where("id IN ?", []uint(ids)).Find(&results).Error; err != nil {
		return out
	}
	byID := make(map[uint]models.Metric, len(results))
	for _, m := range results {
		byID[m.ID] = m
	}
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out
}

func expandWeekly(report models.WeeklyReport) WeeklyReportResponse {
	taskIDs := make([]uint, 0, len(report.Tasks))
	for _, snap := range report.Tasks {
		taskIDs = append(taskIDs, snap.TaskID)
	}
	tasksByID := loadTasksByID(taskIDs)

	entries := make([]WeeklyTaskEntry, 0, len(report.Tasks))
	for _, snap := range report.Tasks {
		entry := WeeklyTaskEntry{TaskID: snap.TaskID, Status: snap.Status}
		if task, ok := tasksByID[snap.TaskID]; ok {
			entry.Task = &task
		}
		entries = append(entries, entry)
	}

	return WeeklyReportResponse{
		WeeklyReport: report,
		Client:       clientRef(report.ClientID),
		Location:     locationRef(report.LocationID),
		Tasks:        entries,
		Improvements: loadImprovements(report.Improvements),
		Metrics:      loadMetrics(report.Metrics),
	}
}

// expandMonthly expande un nivel más profundo: cada reporte semanal
// vinculado se expande a su vez con sus tareas, mejoras y métricas.
func expandMonthly(report models.MonthlyReport) MonthlyReportResponse {
	weeklies := make([]WeeklyReportResponse, 0, len(report.WeeklyReports))
	if len(report.WeeklyReports) > 0 {
		var found []models.WeeklyReport
		if err := database.DB.Where("id IN ?", []uint(report.WeeklyReports)).Find(&found).Error; err == nil {
			byID := make(map[uint]models.WeeklyReport, len(found))
			for _, w := range found {
				byID[w.ID] = w
			}
			for _, id := range report.WeeklyReports {
				if w, ok := byID[id]; ok {
					weeklies = append(weeklies, expandWeekly(w))
				}
			}
		}
	}

	return MonthlyReportResponse{
		MonthlyReport: report,
		Client:        clientRef(report.ClientID),
		Location:      locationRef(report.LocationID),
		WeeklyReports: weeklies,
		Metrics:       loadMetrics(report.Metrics),
	}
}
