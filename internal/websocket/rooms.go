package websocket

import (
	"strconv"
	"strings"
)

// Имена комнат — чистые функции: каждая точка, которой нужна комната,
// выводит одно и то же имя из одних и тех же идентификаторов.

// UserRoom — личная комната присутствия пользователя
func UserRoom(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

// PairRoom — каноническая комната личной переписки: меньший id первым,
// поэтому оба участника получают одну и ту же строку
func PairRoom(a, b uint) string {
	if b < a {
		a, b = b, a
	}
	return strconv.FormatUint(uint64(a), 10) + ":" + strconv.FormatUint(uint64(b), 10)
}

func ChatRoom(chatID uint) string {
	return "chat:" + strconv.FormatUint(uint64(chatID), 10)
}

func ChannelRoom(channelID uint) string {
	return "channel:" + strconv.FormatUint(uint64(channelID), 10)
}

// ParsePairRoom разбирает комнату вида "<id>:<id>". Возвращает ids в том
// порядке, в котором они записаны в имени.
func ParsePairRoom(room string) (uint, uint, bool) {
	left, right, found := strings.Cut(room, ":")
	if !found {
		return 0, 0, false
	}
	a, err := strconv.ParseUint(left, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseUint(right, 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint(a), uint(b), true
}
