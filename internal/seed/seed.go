// Package seed 提供首次运行时写入的演示数据。
//
// 数据集刻意很小：一个可登录的演示账号、几位只作为收发件人出现的
// 联系人，以及覆盖四个文件夹和多个会话的十封邮件。
package seed

import (
	"time"

	"webmail/client/internal/auth"
	"webmail/client/internal/domain"
)

// DemoEmail 演示账号的登录邮箱。
const DemoEmail = "john.doe@example.com"

// DemoPassword 演示账号的登录密码。
const DemoPassword = "password123"

// Users 返回演示用户集合。只有演示账号携带凭证，其余联系人无法登录。
func Users() ([]domain.User, error) {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return []domain.User{
		{ID: "user-1", Name: "John Doe", Email: DemoEmail, PasswordHash: hash, CreatedAt: now},
		{ID: "user-2", Name: "Jane Smith", Email: "jane.smith@example.com", CreatedAt: now},
		{ID: "user-3", Name: "Bob Johnson", Email: "bob.johnson@example.com", CreatedAt: now},
		{ID: "user-4", Name: "Alice Williams", Email: "alice.williams@example.com", CreatedAt: now},
		{ID: "user-5", Name: "Charlie Brown", Email: "charlie.brown@example.com", CreatedAt: now},
	}, nil
}

// Messages 基于用户集合构造演示邮箱内容。
//
// 时间戳相对当前时间倒排，保证演示数据在任何时候打开都显示为最近
// 几天的往来邮件。
func Messages(users []domain.User) []domain.Message {
	if len(users) < 5 {
		return nil
	}
	john, jane, bob, alice, charlie := users[0], users[1], users[2], users[3], users[4]

	now := time.Now().UTC()
	at := func(hoursAgo int) time.Time {
		return now.Add(-time.Duration(hoursAgo) * time.Hour)
	}

	return []domain.Message{
		{
			ID: "msg-1", From: jane, To: []domain.User{john},
			Subject: "Welcome to our new email client!",
			Body: "Hi John,\n\nWelcome to our brand new email client! We're excited to have you here. " +
				"This platform offers a clean and intuitive interface for managing all your emails.\n\n" +
				"Key features:\n- Organize emails into folders\n- Search and filter functionality\n" +
				"- Compose and draft emails\n- Thread view for conversations\n\n" +
				"Let us know if you have any questions!\n\nBest regards,\nJane Smith",
			Timestamp: at(3), IsRead: false, IsStarred: true,
			Folder: domain.FolderInbox, ThreadID: "thread-1",
		},
		{
			ID: "msg-2", From: bob, To: []domain.User{john},
			Subject: "Q4 Project Updates",
			Body: "Hi John,\n\nI wanted to share the latest updates on our Q4 projects. We've made " +
				"significant progress on the client portal and the new dashboard features are nearly " +
				"complete.\n\nCould we schedule a meeting next week to discuss the rollout plan?\n\nThanks,\nBob",
			Timestamp: at(5), IsRead: false, IsStarred: false,
			Folder: domain.FolderInbox, ThreadID: "thread-2",
		},
		{
			ID: "msg-3", From: alice, To: []domain.User{john},
			Subject: "Invoice #12345 - December 2024",
			Body: "Dear John,\n\nPlease find attached the invoice for December 2024. The payment is due " +
				"by December 20th.\n\nTotal Amount: $2,500.00\n\nIf you have any questions, please don't " +
				"hesitate to reach out.\n\nBest regards,\nAlice Williams\nAccounting Department",
			Timestamp: at(22), IsRead: true, IsStarred: false,
			Folder: domain.FolderInbox, ThreadID: "thread-3",
			Attachments: []domain.Attachment{
				{ID: "att-1", Filename: "invoice_12345.pdf", Size: 245000, ContentType: "application/pdf", Ref: "#"},
			},
		},
		{
			ID: "msg-4", From: charlie, To: []domain.User{john},
			Subject: "Team Lunch This Friday?",
			Body: "Hey John,\n\nWe're planning a team lunch this Friday at 12:30 PM. Would you like to " +
				"join us? We're thinking of trying that new Italian restaurant downtown.\n\n" +
				"Let me know if you can make it!\n\nCheers,\nCharlie",
			Timestamp: at(25), IsRead: true, IsStarred: false,
			Folder: domain.FolderInbox, ThreadID: "thread-4",
		},
		{
			ID: "msg-5", From: john, To: []domain.User{bob},
			Subject: "Re: Q4 Project Updates",
			Body: "Hi Bob,\n\nThanks for the update! I'm available next Tuesday or Wednesday afternoon. " +
				"Let me know what works best for you.\n\nLooking forward to seeing the progress.\n\nBest,\nJohn",
			Timestamp: at(20), IsRead: true, IsStarred: false,
			Folder: domain.FolderSent, ThreadID: "thread-2", ReplyTo: "msg-2",
		},
		{
			ID: "msg-6", From: john, To: []domain.User{jane},
			Subject: "Thank you!",
			Body: "Hi Jane,\n\nThank you for the warm welcome! The email client looks great and I'm " +
				"excited to start using it.\n\nBest,\nJohn",
			Timestamp: at(26), IsRead: true, IsStarred: false,
			Folder: domain.FolderSent, ThreadID: "thread-1", ReplyTo: "msg-1",
		},
		{
			ID: "msg-7", From: john, To: []domain.User{alice},
			Subject: "Draft: Meeting Agenda",
			Body: "Hi Alice,\n\nI wanted to discuss the following items in our next meeting:\n\n" +
				"1. Budget review\n2. Timeline updates\n3. Resource allocation\n\n",
			Timestamp: at(45), IsRead: true, IsStarred: false,
			Folder: domain.FolderDrafts, ThreadID: "thread-5",
		},
		{
			ID: "msg-8", From: jane, To: []domain.User{john},
			Subject: "Old Newsletter - October",
			Body: "This is an old newsletter from October that you can delete.",
			Timestamp: at(24 * 50), IsRead: true, IsStarred: false,
			Folder: domain.FolderTrash, ThreadID: "thread-6",
		},
		{
			ID: "msg-9", From: bob, To: []domain.User{john},
			Subject: "Quarterly Review Meeting",
			Body: "Hi John,\n\nLet's schedule our quarterly review meeting. I have some great insights " +
				"to share about our performance this quarter.\n\nHow does next Friday at 2 PM sound?\n\nBest,\nBob",
			Timestamp: at(47), IsRead: false, IsStarred: false,
			Folder: domain.FolderInbox, ThreadID: "thread-7",
		},
		{
			ID: "msg-10", From: alice, To: []domain.User{john},
			Subject: "New Security Updates",
			Body: "Dear Team,\n\nWe've implemented new security measures across all our systems. Please " +
				"review the attached documentation and update your passwords accordingly.\n\n" +
				"The new policies will take effect on Monday.\n\nRegards,\nAlice Williams\nIT Security Team",
			Timestamp: at(50), IsRead: false, IsStarred: true,
			Folder: domain.FolderInbox, ThreadID: "thread-8",
		},
	}
}
