package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"messenger-api/config"
	"messenger-api/internal/domain"
	"messenger-api/internal/handler"
	"messenger-api/internal/mocks"
	"messenger-api/internal/services"
	messenger_errors "messenger-api/pkg/errors"
	"messenger-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	server   *Server
	chats    *mocks.MockChatRepository
	messages *mocks.MockMessageRepository
	users    *mocks.MockUserRepository
	store    *mocks.MockObjectStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		chats:    mocks.NewMockChatRepository(ctrl),
		messages: mocks.NewMockMessageRepository(ctrl),
		users:    mocks.NewMockUserRepository(ctrl),
		store:    mocks.NewMockObjectStore(ctrl),
	}
	l := logger.NewNop()
	h.server = New(&config.Config{AppPort: "0", AppMode: TestMode}, l, nil)
	h.server.SetupRoutes(&Handlers{
		Chat:    handler.NewChatHandler(services.NewChatService(h.chats, l)),
		Message: handler.NewMessageHandler(services.NewMessageService(h.messages)),
		Upload:  handler.NewUploadHandler(services.NewUploadService(h.store, l)),
		User:    handler.NewUserHandler(services.NewUserService(h.users, l)),
	})
	return h
}

func (h *harness) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.server.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, w.Code, "body: %s", w.Body.String())
	require.Equal(t, map[string]any{"error": msg}, decode(t, w))
}

func TestServer_CommonBehaviour(t *testing.T) {
	t.Run("should answer preflight with the group's methods and headers", func(t *testing.T) {
		req := require.New(t)
		h := newHarness(t)

		cases := map[string][2]string{
			"/v1/chats":    {"GET, POST, OPTIONS", "Content-Type, X-User-Id"},
			"/v1/messages": {"GET, POST, OPTIONS", "Content-Type"},
			"/v1/upload":   {"POST, OPTIONS", "Content-Type"},
			"/v1/users":    {"GET, POST, PUT, OPTIONS", "Content-Type, X-User-Id"},
		}
		for path, want := range cases {
			w := h.do(http.MethodOptions, path, "", nil)
			req.Equal(http.StatusOK, w.Code, path)
			req.Empty(w.Body.String(), path)
			req.Equal("*", w.Header().Get("Access-Control-Allow-Origin"), path)
			req.Equal(want[0], w.Header().Get("Access-Control-Allow-Methods"), path)
			req.Equal(want[1], w.Header().Get("Access-Control-Allow-Headers"), path)
		}
	})

	t.Run("should reject unsupported methods with 405", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodDelete, "/v1/chats", "", nil)
		requireError(t, w, http.StatusMethodNotAllowed, "Method not allowed")
		w = h.do(http.MethodGet, "/v1/upload", "", nil)
		requireError(t, w, http.StatusMethodNotAllowed, "Method not allowed")
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should return 404 for unknown paths", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodGet, "/v1/nothing", "", nil)
		requireError(t, w, http.StatusNotFound, "Not found")
	})

	t.Run("should tag every response with a request id", func(t *testing.T) {
		req := require.New(t)
		h := newHarness(t)

		w := h.do(http.MethodGet, "/ping", "", nil)
		req.Equal(http.StatusOK, w.Code)
		req.NotEmpty(w.Header().Get("X-Request-Id"))

		w = h.do(http.MethodGet, "/ping", "", map[string]string{"X-Request-Id": "abc"})
		req.Equal("abc", w.Header().Get("X-Request-Id"))
	})

	t.Run("should report an unhealthy store", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodPost, "/v1/chats", "{not json", nil)
		requireError(t, w, http.StatusBadRequest, "Invalid JSON")
	})

	t.Run("should render a recovered panic as a json 500", func(t *testing.T) {
		req := require.New(t)
		h := newHarness(t)
		h.server.Engine().GET("/v1/explode", func(c *gin.Context) {
			panic("nil map write")
		})

		w := h.do(http.MethodGet, "/v1/explode", "", nil)
		requireError(t, w, http.StatusInternalServerError, "nil map write")
		req.Contains(w.Header().Get("Content-Type"), "application/json")
		req.NotEmpty(w.Header().Get("X-Request-Id"))
		req.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should pass unexpected store errors through as 500", func(t *testing.T) {
		h := newHarness(t)
		h.messages.EXPECT().ListByChat(gomock.Any(), int64(5)).Return(nil, errors.New("connection refused"))

		w := h.do(http.MethodGet, "/v1/messages?chatId=5", "", nil)
		requireError(t, w, http.StatusInternalServerError, "connection refused")
	})
}

func TestServer_Chats(t *testing.T) {
	t.Run("should require the caller header", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodGet, "/v1/chats", "", nil)
		requireError(t, w, http.StatusBadRequest, "Missing X-User-Id header")
		w = h.do(http.MethodGet, "/v1/chats", "", map[string]string{"X-User-Id": "abc"})
		requireError(t, w, http.StatusBadRequest, "Invalid X-User-Id header")
	})

	t.Run("should list chats with null last message fields", func(t *testing.T) {
		req := require.New(t)
		h := newHarness(t)
		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		h.chats.EXPECT().ListForUser(gomock.Any(), int64(1)).Return([]domain.ChatSummary{
			{ChatID: 7, Counterpart: domain.PublicProfile{ID: 2, Username: "@bob", FirstName: lo.ToPtr("Bob")}, LastMessage: lo.ToPtr("hi"), LastMessageTime: &at},
			{ChatID: 8, Counterpart: domain.PublicProfile{ID: 3, Username: "@carol"}},
		}, nil)

		w := h.do(http.MethodGet, "/v1/chats", "", map[string]string{"X-User-Id": "1"})
		req.Equal(http.StatusOK, w.Code)
		chats := decode(t, w)["chats"].([]any)
		req.Len(chats, 2)
		first := chats[0].(map[string]any)
		req.Equal(float64(7), first["chat_id"])
		req.Equal(float64(2), first["user_id"])
		req.Equal("@bob", first["username"])
		req.Equal("Bob", first["first_name"])
		req.Equal("hi", first["last_message"])
		req.Equal("2024-05-01T12:00:00Z", first["last_message_time"])
		second := chats[1].(map[string]any)
		req.Contains(second, "last_message")
		req.Nil(second["last_message"])
		req.Nil(second["last_message_time"])
	})

	t.Run("should return an empty array for a caller without chats", func(t *testing.T) {
		h := newHarness(t)
		h.chats.EXPECT().ListForUser(gomock.Any(), int64(9)).Return([]domain.ChatSummary{}, nil)

		w := h.do(http.MethodGet, "/v1/chats", "", map[string]string{"X-User-Id": "9"})
		require.JSONEq(t, `{"chats":[]}`, w.Body.String())
	})

	t.Run("should create or get a chat", func(t *testing.T) {
		h := newHarness(t)
		h.chats.EXPECT().FindDirect(gomock.Any(), int64(1), int64(2)).Return(int64(0), false, nil)
		h.chats.EXPECT().CreateDirect(gomock.Any(), int64(1), int64(2)).Return(int64(10), nil)

		w := h.do(http.MethodPost, "/v1/chats", `{"user1Id":1,"user2Id":2}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"chatId":10}`, w.Body.String())
	})

	t.Run("should treat an absent body as empty", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodPost, "/v1/chats", "", nil)
		requireError(t, w, http.StatusBadRequest, "Missing user IDs")
	})

	t.Run("should report unknown users as invalid", func(t *testing.T) {
		h := newHarness(t)
		h.chats.EXPECT().FindDirect(gomock.Any(), int64(1), int64(999)).Return(int64(0), false, nil)
		h.chats.EXPECT().CreateDirect(gomock.Any(), int64(1), int64(999)).Return(int64(0), messenger_errors.Invalid("Unknown user"))

		w := h.do(http.MethodPost, "/v1/chats", `{"user1Id":1,"user2Id":999}`, nil)
		requireError(t, w, http.StatusBadRequest, "Unknown user")
	})
}

func TestServer_Messages(t *testing.T) {
	t.Run("should require a numeric chat id", func(t *testing.T) {
		h := newHarness(t)

		requireError(t, h.do(http.MethodGet, "/v1/messages", "", nil), http.StatusBadRequest, "Missing chatId")
		requireError(t, h.do(http.MethodGet, "/v1/messages?chatId=x", "", nil), http.StatusBadRequest, "Invalid chatId")
		requireError(t, h.do(http.MethodGet, "/v1/messages?chatId=0", "", nil), http.StatusBadRequest, "Missing chatId")
		requireError(t, h.do(http.MethodGet, "/v1/messages?chatId=", "", nil), http.StatusBadRequest, "Missing chatId")
	})

	t.Run("should list messages oldest first", func(t *testing.T) {
		req := require.New(t)
		h := newHarness(t)
		t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		h.messages.EXPECT().ListByChat(gomock.Any(), int64(5)).Return([]domain.Message{
			{ID: 1, ChatID: 5, SenderID: 1, Text: "a", CreatedAt: t0, SenderUsername: "@neo"},
			{ID: 2, ChatID: 5, SenderID: 2, Text: "b", CreatedAt: t0.Add(time.Second), SenderUsername: "@trinity", SenderAvatarURL: lo.ToPtr("https://cdn/x.png")},
		}, nil)

		w := h.do(http.MethodGet, "/v1/messages?chatId=5", "", nil)
		req.Equal(http.StatusOK, w.Code)
		messages := decode(t, w)["messages"].([]any)
		req.Len(messages, 2)
		second := messages[1].(map[string]any)
		req.Equal(float64(2), second["id"])
		req.Equal("b", second["text"])
		req.Equal(float64(2), second["sender_id"])
		req.Equal("@trinity", second["username"])
		req.Equal("https://cdn/x.png", second["avatar_url"])
		req.Nil(second["first_name"])
	})

	t.Run("should reject whitespace-only text", func(t *testing.T) {
		h := newHarness(t)

		w := h.do(http.MethodPost, "/v1/messages", `{"chatId":5,"senderId":1,"text":"   "}`, nil)
		requireError(t, w, http.StatusBadRequest, "Missing required fields")
	})

	t.Run("should send a trimmed message", func(t *testing.T) {
		h := newHarness(t)
		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		h.messages.EXPECT().
			Create(gomock.Any(), domain.NewMessage{ChatID: 5, SenderID: 1, Text: "hello"}).
			Return(domain.Message{ID: 77, CreatedAt: at}, nil)

		w := h.do(http.MethodPost, "/v1/messages", `{"chatId":5,"senderId":1,"text":"  hello  "}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"id":77,"created_at":"2024-05-01T12:00:00Z"}`, w.Body.String())
	})
}

func TestServer_Upload(t *testing.T) {
	t.Run("should require file data", func(t *testing.T) {
		h := newHarness(t)

		requireError(t, h.do(http.MethodPost, "/v1/upload", `{}`, nil), http.StatusBadRequest, "Missing file data")
		requireError(t, h.do(http.MethodPost, "/v1/upload", `{"file":"%%%"}`, nil), http.StatusBadRequest, "Invalid file data")
	})

	t.Run("should return the public url", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().PutObject(gomock.Any(), gomock.Any(), "image/jpeg", []byte("jpeg-bytes")).Return(nil)
		h.store.EXPECT().FileURL(gomock.Any()).Return("https://cdn.example/avatars/a.jpeg")

		body := `{"file":"` + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")) + `","type":"image/jpeg"}`
		w := h.do(http.MethodPost, "/v1/upload", body, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"url":"https://cdn.example/avatars/a.jpeg"}`, w.Body.String())
	})
}

func TestServer_Users(t *testing.T) {
	t.Run("should search with the handle marker and exclude the caller's blocks", func(t *testing.T) {
		req := require.New(t)
		h := newHarness(t)
		caller := int64(1)
		h.users.EXPECT().Search(gomock.Any(), "@bob", &caller, domain.SearchLimit).
			Return([]domain.PublicProfile{{ID: 43, Username: "@bob2"}}, nil)

		w := h.do(http.MethodGet, "/v1/users?search=bob", "", map[string]string{"X-User-Id": "1"})
		req.Equal(http.StatusOK, w.Code)
		users := decode(t, w)["users"].([]any)
		req.Len(users, 1)
		req.Equal(float64(43), users[0].(map[string]any)["id"])
	})

	t.Run("should search anonymously without the header", func(t *testing.T) {
		h := newHarness(t)
		h.users.EXPECT().Search(gomock.Any(), "@bob", nil, domain.SearchLimit).Return(nil, nil)

		w := h.do(http.MethodGet, "/v1/users?search=@bob", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"users":[]}`, w.Body.String())
	})

	t.Run("should require a search query", func(t *testing.T) {
		h := newHarness(t)

		requireError(t, h.do(http.MethodGet, "/v1/users?search=%20", "", nil), http.StatusBadRequest, "Missing search query")
		requireError(t, h.do(http.MethodGet, "/v1/users", "", nil), http.StatusBadRequest, "Missing search query")
	})

	t.Run("should reject a non-positive caller on search", func(t *testing.T) {
		h := newHarness(t)

		for _, id := range []string{"0", "-3", "abc"} {
			w := h.do(http.MethodGet, "/v1/users?search=bob", "", map[string]string{"X-User-Id": id})
			requireError(t, w, http.StatusBadRequest, "Invalid X-User-Id header")
		}
	})

	t.Run("should reject an update without fields", func(t *testing.T) {
		h := newHarness(t)

		requireError(t, h.do(http.MethodPut, "/v1/users", `{"userId":1}`, nil), http.StatusBadRequest, "No fields to update")
	})

	t.Run("should report a missing user on update", func(t *testing.T) {
		h := newHarness(t)
		h.users.EXPECT().UpdateProfile(gomock.Any(), int64(999), domain.ProfileUpdate{FirstName: lo.ToPtr("X")}).
			Return(domain.User{}, messenger_errors.NotFound("User not found"))

		w := h.do(http.MethodPut, "/v1/users", `{"userId":999,"firstName":"X"}`, nil)
		requireError(t, w, http.StatusNotFound, "User not found")
	})

	t.Run("should return the updated profile", func(t *testing.T) {
		h := newHarness(t)
		h.users.EXPECT().UpdateProfile(gomock.Any(), int64(1), domain.ProfileUpdate{Username: lo.ToPtr("neo")}).
			Return(domain.User{
				PublicProfile: domain.PublicProfile{ID: 1, Username: "@neo"},
				Language:      "en",
				Theme:         "light",
			}, nil)

		w := h.do(http.MethodPut, "/v1/users", `{"userId":1,"username":"neo"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"user":{"id":1,"username":"@neo","email":null,"first_name":null,"last_name":null,"avatar_url":null,"language":"en","theme":"light"}}`, w.Body.String())
	})

	t.Run("should block and unblock", func(t *testing.T) {
		h := newHarness(t)
		edge := domain.BlockEdge{BlockerID: 1, BlockedID: 42}
		h.users.EXPECT().Block(gomock.Any(), edge).Return(nil)
		h.users.EXPECT().Unblock(gomock.Any(), edge).Return(nil)

		w := h.do(http.MethodPost, "/v1/users", `{"action":"block","blockerId":1,"blockedId":42}`, nil)
		require.JSONEq(t, `{"success":true}`, w.Body.String())
		w = h.do(http.MethodPost, "/v1/users", `{"action":"unblock","blockerId":1,"blockedId":42}`, nil)
		require.JSONEq(t, `{"success":true}`, w.Body.String())
	})

	t.Run("should reject unknown actions and missing ids", func(t *testing.T) {
		h := newHarness(t)

		requireError(t, h.do(http.MethodPost, "/v1/users", `{"action":"mute","blockerId":1,"blockedId":2}`, nil), http.StatusBadRequest, "Unknown action")
		requireError(t, h.do(http.MethodPost, "/v1/users", `{"action":"block","blockerId":1}`, nil), http.StatusBadRequest, "Missing blocker or blocked ID")
	})
}
