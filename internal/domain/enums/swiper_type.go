package enums

type SwiperType string

const (
	SwiperTypeTenant SwiperType = "tenant"
	SwiperTypeHost   SwiperType = "host"
)
