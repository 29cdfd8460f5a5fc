package v1

type InstrumentType interface {
	GetDriverModel() string
}

type InstrumentMeta struct {
	PublishMeta
	Name        string `json:"name" binding:"required,min=1,max=64,excludesall=\u002F\u005C"`
	DriverModel string `json:"driverModel" binding:"required,min=1,max=32,excludesall=\u002F\u005C"`
}

type PublishMeta struct {
	Topic string `json:"topic"`
}

func (m *InstrumentMeta) GetDriverModel() string {
	return m.DriverModel
}
