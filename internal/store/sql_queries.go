package store

const (
	createUser = `INSERT INTO users (login, password_hash, name, mobile) 
    VALUES ($1, $2, $3, $4) 
    RETURNING user_id, login, password_hash, name, mobile, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, mobile, created_at 
    FROM users 
    WHERE login = $1;`

	createDocument = `INSERT INTO documents (id, user_id, name, mime_type, size, blob_key, iv_hex, category, folder_id) 
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) 
    RETURNING id, user_id, name, mime_type, size, blob_key, iv_hex, category, folder_id, created_at;`

	getDocument = `SELECT id, user_id, name, mime_type, size, blob_key, iv_hex, category, folder_id, created_at 
    FROM documents 
    WHERE user_id = $1 AND id = $2;`

	getDocumentByID = `SELECT id, user_id, name, mime_type, size, blob_key, iv_hex, category, folder_id, created_at 
    FROM documents 
    WHERE id = $1;`

	deleteDocument = `DELETE FROM documents 
    WHERE user_id = $1 AND id = $2;`

	createAccessObject = `INSERT INTO access_objects (id, user_id, name, pin, document_ids) 
    VALUES ($1, $2, $3, $4, $5) 
    RETURNING id, user_id, name, pin, document_ids, scan_count, created_at, updated_at;`

	getAccessObject = `SELECT id, user_id, name, pin, document_ids, scan_count, created_at, updated_at 
    FROM access_objects 
    WHERE id = $1;`

	deleteAccessObject = `DELETE FROM access_objects 
    WHERE user_id = $1 AND id = $2;`

	incrementScanCount = `UPDATE access_objects 
    SET scan_count = scan_count + 1, updated_at = NOW() 
    WHERE id = $1;`

	createCard = `INSERT INTO cards (id, user_id, title, number_ciphertext, number_hmac, cvv_ciphertext, cvv_hmac, holder, expiry) 
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) 
    RETURNING id, user_id, title, number_ciphertext, number_hmac, cvv_ciphertext, cvv_hmac, holder, expiry, created_at;`

	listCards = `SELECT id, user_id, title, number_ciphertext, number_hmac, cvv_ciphertext, cvv_hmac, holder, expiry, created_at 
    FROM cards 
    WHERE user_id = $1 
    ORDER BY created_at DESC;`

	deleteCard = `DELETE FROM cards 
    WHERE user_id = $1 AND id = $2;`
)
