package models

// NFT is a collectible shown in the wallet dashboard. Image is a URL.
type NFT struct {
	Id         string `yaml:"id" json:"id" bson:"_id"`
	Name       string `yaml:"name" json:"name" bson:"name"`
	Image      string `yaml:"image" json:"image" bson:"image"`
	Collection string `yaml:"collection" json:"collection" bson:"collection"`
	Chain      string `yaml:"chain" json:"chain" bson:"chain"`
}
