package entity

// Shop configuration keys
const (
	ConfigShopName       = "shop_name"
	ConfigPassword       = "password"
	ConfigGSTRate        = "gst_rate"
	ConfigCurrencySymbol = "currency_symbol"
	ConfigBillFooter     = "bill_footer"
)

// ConfigEntry is one shop-wide setting
type ConfigEntry struct {
	Key   string `gorm:"column:key;primaryKey;size:64" json:"key"`
	Value string `gorm:"column:value;type:text;not null" json:"value"`
}

// TableName returns the table name for the ConfigEntry model
func (ConfigEntry) TableName() string {
	return "config"
}
