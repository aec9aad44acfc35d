package postgres

const (
	queryGetInventory = `
		SELECT capacity, items, version
		FROM inventories
		WHERE owner_id = $1`

	queryGetInventoryForUpdate = queryGetInventory + `
		FOR UPDATE`

	// ON CONFLICT DO NOTHING returns no row when the owner already exists
	queryInsertInventory = `
		INSERT INTO inventories (owner_id, capacity, items, version)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (owner_id) DO NOTHING
		RETURNING version`

	queryUpdateInventory = `
		UPDATE inventories
		SET capacity = $2, items = $3, version = version + 1, updated_at = NOW()
		WHERE owner_id = $1 AND version = $4
		RETURNING version`

	queryDeleteInventory = `DELETE FROM inventories WHERE owner_id = $1`

	queryDeleteUnlocks = `DELETE FROM unlock_events WHERE owner_id = $1`

	queryInsertUnlock = `
		INSERT INTO unlock_events (owner_id, container_id, item_id, special, result)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	queryListUnlocks = `
		SELECT id, owner_id::text, container_id, result, created_at
		FROM unlock_events
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
)
