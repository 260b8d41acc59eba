package entities

// ServiceCode identifies one tinting service offered by the shop.
type ServiceCode string

const (
	ServicePolarizado    ServiceCode = "polarizado"
	ServiceNanoceramica  ServiceCode = "nanoceramica"
	ServiceAutobahnBlack ServiceCode = "autobahn_black"
	ServiceUltrasecure   ServiceCode = "ultrasecure"
)

// CatalogEntry is the list price (whole pesos) and label of a service.
type CatalogEntry struct {
	Code  ServiceCode
	Label string
	Price int64
}

// Catalog is ordered the way services are offered at the counter.
var Catalog = []CatalogEntry{
	{Code: ServicePolarizado, Label: "Polarizado", Price: 350000},
	{Code: ServiceNanoceramica, Label: "Nanocerámica", Price: 800000},
	{Code: ServiceAutobahnBlack, Label: "Autobahn Black CE", Price: 1200000},
	{Code: ServiceUltrasecure, Label: "Ultrasecure", Price: 500000},
}

// LookupService returns the catalog entry for code.
func LookupService(code ServiceCode) (CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.Code == code {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

func (c ServiceCode) Valid() bool {
	_, ok := LookupService(c)
	return ok
}

// ValidateServices checks a requested service set: non-empty, known codes, no repeats.
func ValidateServices(services []ServiceCode) error {
	if len(services) == 0 {
		return ErrNoServices
	}
	seen := make(map[ServiceCode]struct{}, len(services))
	for _, s := range services {
		if !s.Valid() {
			return ErrUnknownService
		}
		if _, dup := seen[s]; dup {
			return ErrDuplicateService
		}
		seen[s] = struct{}{}
	}
	return nil
}
