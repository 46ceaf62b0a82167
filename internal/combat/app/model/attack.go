package model

type AttackRequest struct {
	AttackerID  string           `json:"attackerId"`
	DefenderID  string           `json:"defenderId"`
	Units       map[string]int64 `json:"units"`
	FormationID string           `json:"formationId,omitempty"`
	TerrainID   string           `json:"terrainId,omitempty"`
	AttackType  string           `json:"attackType,omitempty"`

	// 以下字段由接口层填充，不从请求体读取
	IdempotencyKey string `json:"-"`
	ActorUID       int    `json:"-"`
}

type Casualties struct {
	Attacker map[string]int64 `json:"attacker"`
	Defender map[string]int64 `json:"defender"`
}

type CombatOutcome struct {
	Success    bool       `json:"success"`
	ResultTier string     `json:"resultTier"`
	PowerRatio float64    `json:"powerRatio"`
	Casualties Casualties `json:"casualties"`
	LandGained int64      `json:"landGained"`
	GoldLooted int64      `json:"goldLooted"`
	Message    string     `json:"message"`
	ReportID   int64      `json:"reportId,string"`
	Terrain    string     `json:"terrain"`
	Formation  string     `json:"formation"`
}
