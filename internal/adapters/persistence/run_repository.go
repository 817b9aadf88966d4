package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/swarmsim-go/internal/domain/mission"
	"github.com/andrescamacho/swarmsim-go/internal/domain/simulation"
)

const defaultBatchSize = 500

// GormRunRepository implements simulation.RunRepository using GORM
type GormRunRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewGormRunRepository creates a run repository writing time series rows in
// batches of batchSize
func NewGormRunRepository(db *gorm.DB, batchSize int) *GormRunRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &GormRunRepository{db: db, batchSize: batchSize}
}

// Save persists a run with its time series and events in one transaction
func (r *GormRunRepository) Save(ctx context.Context, run *simulation.Run) error {
	if run.Results == nil {
		return fmt.Errorf("run %s has no results", run.ID)
	}

	runModel, err := runToModel(run)
	if err != nil {
		return fmt.Errorf("failed to convert run to model: %w", err)
	}
	dayModels, err := daysToModels(run.ID.String(), run.Results.Timeseries)
	if err != nil {
		return fmt.Errorf("failed to convert time series to models: %w", err)
	}
	eventModels := eventsToModels(run.ID.String(), run.Results.Events)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(runModel).Error; err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
		if len(dayModels) > 0 {
			if err := tx.CreateInBatches(dayModels, r.batchSize).Error; err != nil {
				return fmt.Errorf("failed to create time series: %w", err)
			}
		}
		if len(eventModels) > 0 {
			if err := tx.CreateInBatches(eventModels, r.batchSize).Error; err != nil {
				return fmt.Errorf("failed to create events: %w", err)
			}
		}
		return nil
	})
}

// FindByID retrieves a run with its full time series and events
func (r *GormRunRepository) FindByID(ctx context.Context, id simulation.RunID) (*simulation.Run, error) {
	var model SimulationRunModel
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &simulation.ErrRunNotFound{RunID: id.String()}
		}
		return nil, fmt.Errorf("failed to find run: %w", result.Error)
	}

	run, err := modelToRun(&model)
	if err != nil {
		return nil, err
	}

	var days []SimulationDayModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", model.ID).Order("day ASC").Find(&days).Error; err != nil {
		return nil, fmt.Errorf("failed to load time series: %w", err)
	}
	run.Results.Timeseries, err = modelsToDays(days)
	if err != nil {
		return nil, err
	}

	var events []SimulationEventModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", model.ID).Order("id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	run.Results.Events = modelsToEvents(events)

	return run, nil
}

// List retrieves runs newest first. The returned runs carry the summary and
// parameters but no time series or events.
func (r *GormRunRepository) List(ctx context.Context, opts simulation.ListOptions) ([]*simulation.Run, error) {
	query := r.db.WithContext(ctx).Model(&SimulationRunModel{})

	if opts.ScenarioName != "" {
		query = query.Where("scenario_name = ?", opts.ScenarioName)
	}

	query = query.Order("created_at DESC")

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []SimulationRunModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*simulation.Run, len(models))
	for i := range models {
		run, err := modelToRun(&models[i])
		if err != nil {
			return nil, err
		}
		runs[i] = run
	}

	return runs, nil
}

func runToModel(run *simulation.Run) (*SimulationRunModel, error) {
	summaryJSON, err := json.Marshal(run.Results.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary: %w", err)
	}
	paramsJSON, err := json.Marshal(run.Results.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}

	return &SimulationRunModel{
		ID:               run.ID.String(),
		ScenarioName:     run.ScenarioName,
		Seed:             run.Seed,
		HorizonYears:     run.HorizonYears,
		Label:            run.Label,
		CreatedAt:        run.CreatedAt,
		DayCount:         len(run.Results.Timeseries),
		YearsToTarget:    run.Results.Summary.YearsToTarget,
		TotalAreaM2:      run.Results.Summary.TotalAreaM2,
		DeliveredPowerGW: run.Results.Summary.DeliveredPowerGW,
		Summary:          string(summaryJSON),
		Parameters:       string(paramsJSON),
	}, nil
}

func modelToRun(model *SimulationRunModel) (*simulation.Run, error) {
	id, err := simulation.ParseRunID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid run id in database: %w", err)
	}

	results := &simulation.Results{}
	if model.Summary != "" {
		if err := json.Unmarshal([]byte(model.Summary), &results.Summary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal summary of run %s: %w", model.ID, err)
		}
	}
	if model.Parameters != "" {
		if err := json.Unmarshal([]byte(model.Parameters), &results.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parameters of run %s: %w", model.ID, err)
		}
	}

	return &simulation.Run{
		ID:           id,
		ScenarioName: model.ScenarioName,
		Seed:         model.Seed,
		HorizonYears: model.HorizonYears,
		CreatedAt:    model.CreatedAt,
		Label:        model.Label,
		Results:      results,
	}, nil
}

func daysToModels(runID string, days []simulation.DayRecord) ([]SimulationDayModel, error) {
	models := make([]SimulationDayModel, len(days))
	for i, d := range days {
		bandArea, err := json.Marshal(d.BandAreaM2)
		if err != nil {
			return nil, err
		}
		bandOD, err := json.Marshal(d.BandOpticalDepth)
		if err != nil {
			return nil, err
		}
		models[i] = SimulationDayModel{
			RunID:               runID,
			Day:                 d.Day,
			Phase:               int(d.Phase),
			CollectorAreaM2:     d.CollectorAreaM2,
			StructureKg:         d.StructureKg,
			LaunchedM2:          d.LaunchedM2,
			TransportedM2:       d.TransportedM2,
			CumAreaM2:           d.CumAreaM2,
			OpticalDepth:        d.OpticalDepth,
			PowerGW:             d.PowerGW,
			MassDriversOnline:   d.MassDriversOnline,
			CadenceTotal:        d.CadenceTotal,
			EnergyKWh:           d.EnergyKWh,
			ResourceRemainingKg: d.ResourceRemainingKg,
			UsedMassKg:          d.UsedMassKg,
			GrowthMultiplier:    d.GrowthMultiplier,
			TransportMWUsed:     d.TransportMWUsed,
			TransportMWh:        d.TransportMWh,
			BandAreaM2:          string(bandArea),
			BandOpticalDepth:    string(bandOD),
		}
	}
	return models, nil
}

func modelsToDays(models []SimulationDayModel) ([]simulation.DayRecord, error) {
	days := make([]simulation.DayRecord, len(models))
	for i, m := range models {
		var bandArea, bandOD []float64
		if m.BandAreaM2 != "" {
			if err := json.Unmarshal([]byte(m.BandAreaM2), &bandArea); err != nil {
				return nil, fmt.Errorf("invalid band areas for day %d: %w", m.Day, err)
			}
		}
		if m.BandOpticalDepth != "" {
			if err := json.Unmarshal([]byte(m.BandOpticalDepth), &bandOD); err != nil {
				return nil, fmt.Errorf("invalid band optical depths for day %d: %w", m.Day, err)
			}
		}
		days[i] = simulation.DayRecord{
			Day:                 m.Day,
			Phase:               mission.Phase(m.Phase),
			CollectorAreaM2:     m.CollectorAreaM2,
			StructureKg:         m.StructureKg,
			LaunchedM2:          m.LaunchedM2,
			TransportedM2:       m.TransportedM2,
			CumAreaM2:           m.CumAreaM2,
			OpticalDepth:        m.OpticalDepth,
			PowerGW:             m.PowerGW,
			MassDriversOnline:   m.MassDriversOnline,
			CadenceTotal:        m.CadenceTotal,
			EnergyKWh:           m.EnergyKWh,
			ResourceRemainingKg: m.ResourceRemainingKg,
			UsedMassKg:          m.UsedMassKg,
			GrowthMultiplier:    m.GrowthMultiplier,
			TransportMWUsed:     m.TransportMWUsed,
			TransportMWh:        m.TransportMWh,
			BandAreaM2:          bandArea,
			BandOpticalDepth:    bandOD,
		}
	}
	return days, nil
}

func eventsToModels(runID string, events []mission.Event) []SimulationEventModel {
	models := make([]SimulationEventModel, len(events))
	for i, e := range events {
		models[i] = SimulationEventModel{
			RunID:             runID,
			Day:               e.Day,
			Type:              string(e.Type),
			AreaM2:            e.AreaM2,
			System:            e.System,
			MassDriversOnline: e.MassDriversOnline,
		}
	}
	return models
}

func modelsToEvents(models []SimulationEventModel) []mission.Event {
	events := make([]mission.Event, len(models))
	for i, m := range models {
		events[i] = mission.Event{
			Day:               m.Day,
			Type:              mission.EventType(m.Type),
			AreaM2:            m.AreaM2,
			System:            m.System,
			MassDriversOnline: m.MassDriversOnline,
		}
	}
	return events
}
