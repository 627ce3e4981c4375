package migration

// getAllMigrations retorna todas as migrações do sistema
func getAllMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_plan_history",
			Up: `
				CREATE TABLE IF NOT EXISTS plan_history (
					id SERIAL PRIMARY KEY,
					requested_hours DOUBLE PRECISION NOT NULL,
					subject_count INTEGER NOT NULL,
					selected_count INTEGER NOT NULL,
					total_hours DOUBLE PRECISION NOT NULL,
					allocations JSONB NOT NULL,
					created_at TIMESTAMP DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_plan_history_created_at
					ON plan_history(created_at DESC);
			`,
			Down: `DROP TABLE IF EXISTS plan_history;`,
		},
	}
}
