package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36, Comment: "用户ID (UUID)"},
		{Name: "username", Type: field.TypeString, Unique: true, Size: 50},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "last_login_at", Type: field.TypeTime, Nullable: true},
		{Name: "deleted_at", Type: field.TypeTime, Nullable: true, Comment: "软删除时间（NULL 表示未删除）"},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "user_deleted_at",
				Unique:  false,
				Columns: []*schema.Column{UsersColumns[4]},
			},
		},
	}
	// ChatsColumns holds the columns for the "chats" table.
	ChatsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "chat_id", Type: field.TypeString, Size: 64, Comment: "客户端会话ID"},
		{Name: "user_id", Type: field.TypeString, Size: 36, Comment: "所属用户ID"},
		{Name: "title", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ChatsTable holds the schema information for the "chats" table.
	ChatsTable = &schema.Table{
		Name:       "chats",
		Columns:    ChatsColumns,
		PrimaryKey: []*schema.Column{ChatsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "chat_chat_id_user_id",
				Unique:  true,
				Columns: []*schema.Column{ChatsColumns[1], ChatsColumns[2]},
			},
			{
				Name:    "chat_user_id",
				Unique:  false,
				Columns: []*schema.Column{ChatsColumns[2]},
			},
		},
	}
	// ChatItemsColumns holds the columns for the "chat_items" table.
	ChatItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "seq", Type: field.TypeInt, Comment: "position of the turn inside its chat"},
		{Name: "role", Type: field.TypeString, Size: 16},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "response_data", Type: field.TypeJSON, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "chat_ref", Type: field.TypeInt},
	}
	// ChatItemsTable holds the schema information for the "chat_items" table.
	ChatItemsTable = &schema.Table{
		Name:       "chat_items",
		Columns:    ChatItemsColumns,
		PrimaryKey: []*schema.Column{ChatItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "chat_items_chats_items",
				Columns:    []*schema.Column{ChatItemsColumns[6]},
				RefColumns: []*schema.Column{ChatsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "chatitem_chat_ref_seq",
				Unique:  true,
				Columns: []*schema.Column{ChatItemsColumns[6], ChatItemsColumns[1]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		UsersTable,
		ChatsTable,
		ChatItemsTable,
	}
)

func init() {
	ChatItemsTable.ForeignKeys[0].RefTable = ChatsTable
}
