package http

import (
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID   int64  `json:"id"`
	Code string `json:"code,omitempty"`
}

type Quantity struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type Party struct {
	Kind    string  `json:"kind"`
	MillID  *int64  `json:"millId,omitempty"`
	ActorID *string `json:"actorId,omitempty"`
}

type NewOilMill struct {
	Name        string `json:"name"`
	ManagerID   string `json:"managerId"`
	HasLab      bool   `json:"hasLab"`
	HasPackUnit bool   `json:"hasPackUnit"`
}

type NewOliveGrove struct {
	Name    string `json:"name"`
	Variety string `json:"variety"`
}

type NewHarvest struct {
	Date     string   `json:"date"`
	Quantity Quantity `json:"quantity"`
	Variety  string   `json:"variety"`
}

type NewMachine struct {
	Reference    string `json:"reference"`
	Brand        string `json:"brand"`
	Manufacturer string `json:"manufacturer"`
	PurchaseDate string `json:"purchaseDate"`
	Capacity     int    `json:"capacity"`
	Type         string `json:"type"`
}

type MachineListItem struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`
	Type      string `json:"type"`
	Capacity  int    `json:"capacity"`
}

type Machine struct {
	ID           int64  `json:"id"`
	MillID       int64  `json:"millId"`
	MillName     string `json:"millName"`
	Reference    string `json:"reference"`
	Brand        string `json:"brand,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	PurchaseDate string `json:"purchaseDate"`
	Capacity     int    `json:"capacity"`
	Type         string `json:"type"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NewStorageArea struct {
	LocalType      string       `json:"localType"`
	Address        string       `json:"address"`
	Location       *Coordinates `json:"location,omitempty"`
	ContainerType  string       `json:"containerType"`
	ContainerCount int          `json:"containerCount"`
}

type StorageArea struct {
	ID             int64        `json:"id"`
	Owner          Party        `json:"owner"`
	LocalType      string       `json:"localType"`
	Address        string       `json:"address"`
	Location       *Coordinates `json:"location,omitempty"`
	ContainerType  string       `json:"containerType"`
	ContainerCount int          `json:"containerCount"`
}

type OfferListing struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Kind         string    `json:"kind"`
	GoodID       int64     `json:"goodId"`
	Seller       Party     `json:"seller"`
	Available    Quantity  `json:"available"`
	Price        Money     `json:"price"`
	Transport    string    `json:"transport"`
	Variety      string    `json:"variety,omitempty"`
	CreationDate time.Time `json:"creationDate"`
}

type NewNeed struct {
	Kind        string   `json:"kind"`
	Quantity    Quantity `json:"quantity"`
	MaxPrice    Money    `json:"maxPrice"`
	NeedDate    string   `json:"needDate"`
	Description string   `json:"description"`
}

type NewOffer struct {
	Kind          string   `json:"kind"`
	GoodID        int64    `json:"goodId"`
	Quantity      Quantity `json:"quantity"`
	Price         Money    `json:"price"`
	NeedID        *int64   `json:"needId,omitempty"`
	MotherOfferID *int64   `json:"motherOfferId,omitempty"`
	Transport     *string  `json:"transport,omitempty"`
}

type NewRequest struct {
	Quantity Quantity `json:"quantity"`
	Price    *Money   `json:"price,omitempty"`
}

type Feedback struct {
	Appreciation int    `json:"appreciation"`
	Feedback     string `json:"feedback"`
}

type Purchase struct {
	Remaining Quantity `json:"remaining"`
	Closed    bool     `json:"closed"`
}

type OfferBalance struct {
	OfferID   int64    `json:"offerId"`
	Code      string   `json:"code"`
	Status    string   `json:"status"`
	Initial   Quantity `json:"initial"`
	Available Quantity `json:"available"`
	Bought    Quantity `json:"bought"`
	Conserved bool     `json:"conserved"`
}

type NewServiceRequest struct {
	Kind          string   `json:"kind"`
	SubjectID     int64    `json:"subjectId"`
	Quantity      Quantity `json:"quantity"`
	Price         Money    `json:"price"`
	Method        string   `json:"method"`
	PackagingType string   `json:"packagingType"`
	Volume        string   `json:"volume"`
	Condition     string   `json:"condition"`
	AnalysisTypes []string `json:"analysisTypes"`
}

type NewServiceOffer struct {
	Price      Money `json:"price"`
	Negotiable bool  `json:"negotiable"`
}

type Extraction struct {
	ReceptionDate    string   `json:"receptionDate"`
	StartDate        string   `json:"startDate"`
	FinishDate       string   `json:"finishDate"`
	OlivesQuantity   Quantity `json:"olivesQuantity"`
	ProducedQuantity Quantity `json:"producedQuantity"`
	Method           string   `json:"method"`
	WaterPer100Kg    int      `json:"waterPer100Kg"`
	MixingMinutes    int      `json:"mixingMinutes"`
	PressTemperature string   `json:"pressTemperature"`
	Filtration       bool     `json:"filtration"`
}

type Packaging struct {
	Reference     string   `json:"reference"`
	PackingDate   string   `json:"packingDate"`
	Quantity      Quantity `json:"quantity"`
	PackagingType string   `json:"packagingType"`
	Volume        string   `json:"volume"`
	Factory       string   `json:"factory"`
}

type Storage struct {
	StorageDate    string   `json:"storageDate"`
	StoredQuantity Quantity `json:"storedQuantity"`
	AreaID         int64    `json:"areaId"`
}

type Analysis struct {
	Reference     string `json:"reference"`
	AnalysisDate  string `json:"analysisDate"`
	LabName       string `json:"labName"`
	Quality       string `json:"quality"`
	FattyAcid     string `json:"fattyAcid"`
	Acidity       string `json:"acidity"`
	PeroxideValue string `json:"peroxideValue"`
	UVAbsorbance  string `json:"uvAbsorbance"`
}

// Report content is base64 in JSON and decoded into Content by encoding/json.
type Report struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

// Completion carries exactly one of the kind-specific records.
type Completion struct {
	Extraction *Extraction `json:"extraction,omitempty"`
	Packaging  *Packaging  `json:"packaging,omitempty"`
	Storage    *Storage    `json:"storage,omitempty"`
	Analysis   *Analysis   `json:"analysis,omitempty"`
	Report     *Report     `json:"report,omitempty"`
}

type NewOperation struct {
	MillID            *int64     `json:"millId,omitempty"`
	HarvestID         *int64     `json:"harvestId,omitempty"`
	PurchasedOliveIDs []int64    `json:"purchasedOliveIds,omitempty"`
	Extraction        Extraction `json:"extraction"`
}

type Ownership struct {
	ProductID     int64  `json:"productId"`
	OwnerCategory string `json:"ownerCategory"`
	Owner         *Party `json:"owner,omitempty"`
	Holder        *Party `json:"holder,omitempty"`
}

type LineageLink struct {
	ID             int64    `json:"id"`
	Code           string   `json:"code"`
	Cause          string   `json:"cause"`
	ProductionDate string   `json:"productionDate"`
	Produced       Quantity `json:"produced"`
	OperationID    *int64   `json:"operationId,omitempty"`
	Holder         *Party   `json:"holder,omitempty"`
}

type Message struct {
	ID         int64     `json:"id"`
	Recipient  string    `json:"recipient"`
	Kind       string    `json:"kind"`
	Subject    string    `json:"subject"`
	Text       string    `json:"text"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (q Quantity) toDomain(param string) (kernel.Quantity, error) {
	value, err := decimal.NewFromString(q.Value)
	if err != nil {
		return kernel.Quantity{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	unit, err := kernel.ParseUnit(q.Unit)
	if err != nil {
		return kernel.Quantity{}, err
	}
	return kernel.NewQuantity(value, unit)
}

func (m Money) toDomain(param string) (kernel.Money, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	currency, err := kernel.ParseCurrency(m.Currency)
	if err != nil {
		return kernel.Money{}, err
	}
	return kernel.NewMoney(amount, currency)
}

func quantityFrom(q kernel.Quantity) Quantity {
	return Quantity{Value: q.Value().String(), Unit: q.Unit().String()}
}

func moneyFrom(m kernel.Money) Money {
	return Money{Amount: m.Amount().String(), Currency: m.Currency().String()}
}

func partyFrom(p *kernel.Party) *Party {
	if p == nil {
		return nil
	}
	out := &Party{Kind: p.Kind().String()}
	if id := p.MillID(); id != nil {
		v := id.Int64()
		out.MillID = &v
	}
	if id := p.ActorID(); id != nil {
		v := id.String()
		out.ActorID = &v
	}
	return out
}

// parseDate reads a "2006-01-02" date; an empty string is the zero time.
func parseDate(param, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return t, nil
}

// optionalDecimal parses an optional numeric query parameter.
func optionalDecimal(param string, v *string) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*v)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &d, nil
}

func optionalID(v *int64) (*kernel.ID, error) {
	if v == nil {
		return nil, nil
	}
	id, err := kernel.NewID(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
