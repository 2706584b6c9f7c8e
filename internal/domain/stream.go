package domain

// Stream names
const (
	StreamStoreUpsert = "stream:stores:upsert"
)

// StoreEvent - входящее событие на создание/обновление магазина
type StoreEvent struct {
	StoreID   string  `json:"store_id,omitempty"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Line1     string  `json:"line1"`
	Line2     string  `json:"line2,omitempty"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	County    string  `json:"county"`
	Zip5      int     `json:"zip5"`
	Zip4      string  `json:"zip4,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// NewStoreEvent - событие, воспроизводящее магазин целиком
func NewStoreEvent(s Store) StoreEvent {
	return StoreEvent{
		StoreID:   s.ID,
		Name:      s.Name,
		Latitude:  s.Location.Latitude,
		Longitude: s.Location.Longitude,
		Line1:     s.Address.Line1,
		Line2:     s.Address.Line2,
		City:      s.Address.City,
		State:     s.Address.State,
		County:    s.Address.County,
		Zip5:      s.Address.Zip5,
		Zip4:      s.Address.Zip4,
		ImageURL:  s.MainImageURL,
	}
}

// ToStore строит валидированный Store из события
func (e StoreEvent) ToStore() (Store, error) {
	loc, err := NewCoordinate(e.Latitude, e.Longitude)
	if err != nil {
		return Store{}, err
	}
	addr, err := NewAddress(e.Line1, e.Line2, e.City, e.State, e.County, e.Zip5, e.Zip4)
	if err != nil {
		return Store{}, err
	}
	s, err := NewStore(e.StoreID, e.Name, loc, addr)
	if err != nil {
		return Store{}, err
	}
	if e.ImageURL != "" {
		s = s.WithMainImageURL(e.ImageURL)
	}
	return s, nil
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
