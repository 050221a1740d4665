package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chatgenius/internal/domain"
)

// Models 返回需要迁移的全部模型
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Workspace{},
		&domain.WorkspaceMember{},
		&domain.Channel{},
		&domain.ChannelMember{},
		&domain.Message{},
		&domain.MessageRead{},
		&domain.Reaction{},
		&domain.WorkspaceInvite{},
		&domain.File{},
	}
}

// MigrateDB 使用 AutoMigrate 创建/更新全部表和唯一索引。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	for _, stmt := range binaryCollationDDL(db.Dialector.Name()) {
		if err := db.Exec(stmt).Error; err != nil {
			logrus.Errorf("Failed to apply column collation: %v", err)
			return fmt.Errorf("failed to apply column collation: %w", err)
		}
	}
	logrus.Info("Database migration completed successfully")
	return nil
}

// binaryCollationDDL 返回把 emoji 列改为按字节比较的语句。
// MySQL 的 utf8mb4 默认排序规则下 👍/😀 或 ❤/❤️ 会被视为相同，唯一索引 uk_reaction 因此误报冲突。
// SQLite 等方言默认按字节比较，返回空。
func binaryCollationDDL(dialect string) []string {
	if dialect != "mysql" {
		return nil
	}
	return []string{
		"ALTER TABLE reactions MODIFY emoji VARCHAR(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
	}
}
