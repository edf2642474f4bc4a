package servicerepo

import (
	"fmt"
	"time"

	"oliveflow/internal/core/domain/model/good"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/service"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DetailsDocument is the jsonb form of a request's kind-specific details.
// Only the member matching the row's kind is set.
type DetailsDocument struct {
	Extraction *service.ExtractionDetails `json:"extraction,omitempty"`
	Packaging  *service.PackagingDetails  `json:"packaging,omitempty"`
	Storage    *service.StorageDetails    `json:"storage,omitempty"`
	Analysis   *service.AnalysisDetails   `json:"analysis,omitempty"`
}

func detailsFromDomain(d service.Details) DetailsDocument {
	var doc DetailsDocument
	switch v := d.(type) {
	case service.ExtractionDetails:
		doc.Extraction = &v
	case service.PackagingDetails:
		doc.Packaging = &v
	case service.StorageDetails:
		doc.Storage = &v
	case service.AnalysisDetails:
		doc.Analysis = &v
	}
	return doc
}

func (doc DetailsDocument) toDomain(kind service.Kind) (service.Details, error) {
	switch {
	case kind == service.Extraction && doc.Extraction != nil:
		return *doc.Extraction, nil
	case kind == service.Packaging && doc.Packaging != nil:
		return *doc.Packaging, nil
	case kind == service.Storage && doc.Storage != nil:
		return *doc.Storage, nil
	case kind == service.Analysis && doc.Analysis != nil:
		return *doc.Analysis, nil
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("details", fmt.Errorf("no stored %s details", kind))
}

type quantityDocument struct {
	Value decimal.Decimal `json:"value"`
	Unit  kernel.Unit     `json:"unit"`
}

func quantityDoc(q kernel.Quantity) quantityDocument {
	return quantityDocument{Value: q.Value(), Unit: q.Unit()}
}

func (d quantityDocument) toDomain() (kernel.Quantity, error) {
	return kernel.NewQuantity(d.Value, d.Unit)
}

type extractionDocument struct {
	ReceptionDate    time.Time        `json:"reception_date"`
	StartDate        time.Time        `json:"start_date"`
	FinishDate       time.Time        `json:"finish_date"`
	OlivesQuantity   quantityDocument `json:"olives_quantity"`
	ProducedQuantity quantityDocument `json:"produced_quantity"`
	Method           string           `json:"method"`
	WaterPer100Kg    int              `json:"water_per_100kg"`
	MixingMinutes    int              `json:"mixing_minutes"`
	PressTemperature decimal.Decimal  `json:"press_temperature"`
	Filtration       bool             `json:"filtration"`
}

type packagingDocument struct {
	Reference   string                `json:"reference"`
	PackingDate time.Time             `json:"packing_date"`
	Quantity    quantityDocument      `json:"quantity"`
	Type        service.PackagingType `json:"type"`
	Volume      string                `json:"volume"`
	Factory     string                `json:"factory"`
}

type storageDocument struct {
	StorageDate    time.Time        `json:"storage_date"`
	StoredQuantity quantityDocument `json:"stored_quantity"`
	AreaID         int64            `json:"area_id"`
}

type analysisDocument struct {
	Reference     string       `json:"reference"`
	AnalysisDate  time.Time    `json:"analysis_date"`
	LabName       string       `json:"lab_name"`
	Quality       good.Quality `json:"quality"`
	FattyAcid     string       `json:"fatty_acid,omitempty"`
	Acidity       string       `json:"acidity,omitempty"`
	PeroxideValue string       `json:"peroxide_value,omitempty"`
	UVAbsorbance  string       `json:"uv_absorbance,omitempty"`
	ReportKey     string       `json:"report_key,omitempty"`
}

// RecordDocument is the jsonb form of an operation's completion record.
type RecordDocument struct {
	Extraction *extractionDocument `json:"extraction,omitempty"`
	Packaging  *packagingDocument  `json:"packaging,omitempty"`
	Storage    *storageDocument    `json:"storage,omitempty"`
	Analysis   *analysisDocument   `json:"analysis,omitempty"`
}

func recordFromDomain(r service.Record) RecordDocument {
	var doc RecordDocument
	switch v := r.(type) {
	case service.ExtractionRecord:
		doc.Extraction = &extractionDocument{
			ReceptionDate:    v.ReceptionDate,
			StartDate:        v.StartDate,
			FinishDate:       v.FinishDate,
			OlivesQuantity:   quantityDoc(v.OlivesQuantity),
			ProducedQuantity: quantityDoc(v.ProducedQuantity),
			Method:           v.Method,
			WaterPer100Kg:    v.WaterPer100Kg,
			MixingMinutes:    v.MixingMinutes,
			PressTemperature: v.PressTemperature,
			Filtration:       v.Filtration,
		}
	case service.PackagingRecord:
		doc.Packaging = &packagingDocument{
			Reference:   v.Reference,
			PackingDate: v.PackingDate,
			Quantity:    quantityDoc(v.Quantity),
			Type:        v.Type,
			Volume:      v.Volume,
			Factory:     v.Factory,
		}
	case service.StorageRecord:
		doc.Storage = &storageDocument{
			StorageDate:    v.StorageDate,
			StoredQuantity: quantityDoc(v.StoredQuantity),
			AreaID:         v.AreaID.Int64(),
		}
	case service.AnalysisRecord:
		a := analysisDocument(v)
		doc.Analysis = &a
	}
	return doc
}

func (doc RecordDocument) toDomain(kind service.Kind) (service.Record, error) {
	switch {
	case kind == service.Extraction && doc.Extraction != nil:
		e := doc.Extraction
		olives, err := e.OlivesQuantity.toDomain()
		if err != nil {
			return nil, err
		}
		produced, err := e.ProducedQuantity.toDomain()
		if err != nil {
			return nil, err
		}
		return service.ExtractionRecord{
			ReceptionDate:    e.ReceptionDate,
			StartDate:        e.StartDate,
			FinishDate:       e.FinishDate,
			OlivesQuantity:   olives,
			ProducedQuantity: produced,
			Method:           e.Method,
			WaterPer100Kg:    e.WaterPer100Kg,
			MixingMinutes:    e.MixingMinutes,
			PressTemperature: e.PressTemperature,
			Filtration:       e.Filtration,
		}, nil
	case kind == service.Packaging && doc.Packaging != nil:
		p := doc.Packaging
		quantity, err := p.Quantity.toDomain()
		if err != nil {
			return nil, err
		}
		return service.PackagingRecord{
			Reference:   p.Reference,
			PackingDate: p.PackingDate,
			Quantity:    quantity,
			Type:        p.Type,
			Volume:      p.Volume,
			Factory:     p.Factory,
		}, nil
	case kind == service.Storage && doc.Storage != nil:
		s := doc.Storage
		stored, err := s.StoredQuantity.toDomain()
		if err != nil {
			return nil, err
		}
		return service.StorageRecord{
			StorageDate:    s.StorageDate,
			StoredQuantity: stored,
			AreaID:         kernel.ID(s.AreaID),
		}, nil
	case kind == service.Analysis && doc.Analysis != nil:
		return service.AnalysisRecord(*doc.Analysis), nil
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("operation record", fmt.Errorf("no stored %s record", kind))
}
