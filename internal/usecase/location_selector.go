package usecase

// clickedLocation извлекает код страны из clickData карты:
// {"points": [{"location": "USA", ...}]}. Пустая строка, если кода нет.
func clickedLocation(clickData interface{}) string {
	payload, ok := clickData.(map[string]interface{})
	if !ok {
		return ""
	}
	points, ok := payload["points"].([]interface{})
	if !ok || len(points) == 0 {
		return ""
	}
	point, ok := points[0].(map[string]interface{})
	if !ok {
		return ""
	}
	location, _ := point["location"].(string)
	return location
}

// SelectLocation - переход состояния выбора локации. Клик по карте с
// распознанной страной выбирает ее, если пересчет не вызван счетчиком кнопки;
// во всех остальных случаях (кнопка, первичная отрисовка) - национальный ряд.
func SelectLocation(clickData interface{}, toggleTriggered bool, national string) string {
	if location := clickedLocation(clickData); location != "" && !toggleTriggered {
		return location
	}
	return national
}
