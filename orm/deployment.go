package orm

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AgentDeployment records a hosted assistant provisioned for one of
// the local agent configs. AgentKey is the stable local identifier
// ("calculator", "chat"); AssistantID is the remote one.
type AgentDeployment struct {
	ID           uint   `gorm:"primaryKey"`
	AgentKey     string `gorm:"uniqueIndex"`
	AssistantID  string
	Name         string
	Model        string
	Instructions string
	DeployedAt   time.Time
}

// SaveDeployment upserts the deployment record for an agent key.
func SaveDeployment(db *gorm.DB, dep *AgentDeployment) error {
	if dep.DeployedAt.IsZero() {
		dep.DeployedAt = time.Now()
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "agent_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"assistant_id", "name", "model", "instructions", "deployed_at"}),
	}).Create(dep).Error
}

// GetDeployment fetches the deployment record for an agent key.
func GetDeployment(db *gorm.DB, agentKey string) (*AgentDeployment, error) {
	var dep AgentDeployment
	if err := db.Where("agent_key = ?", agentKey).First(&dep).Error; err != nil {
		return nil, err
	}
	return &dep, nil
}

// ListDeployments returns all deployment records ordered by agent key.
func ListDeployments(db *gorm.DB) ([]AgentDeployment, error) {
	var deps []AgentDeployment
	if err := db.Order("agent_key").Find(&deps).Error; err != nil {
		return nil, err
	}
	return deps, nil
}

// DeleteDeployment removes the deployment record for an agent key.
func DeleteDeployment(db *gorm.DB, agentKey string) error {
	return db.Where("agent_key = ?", agentKey).Delete(&AgentDeployment{}).Error
}
